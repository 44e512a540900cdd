// Package transport defines the narrow interface the SDK consumes from a
// ledger node, plus adapters that compose multiple endpoints.
//
// The lifecycle depends only on the four operation shapes below, never on a
// concrete backend's request/response records. Payloads crossing this
// interface are wire bytes produced and consumed by the xdr package.
package transport

import "context"

// Node is a ledger RPC endpoint.
//
// Contract:
// - All methods MUST be safe for concurrent use by multiple invocations.
// - Submit MUST return the network-assigned 32-byte transaction hash.
// - Status MUST return ErrNotFound for an unknown hash.
// - Implementations MUST honor ctx cancellation on every call.
type Node interface {
	// Simulate runs the serialized operation against current ledger state
	// and returns its resource footprint, fee and authorization needs.
	Simulate(ctx context.Context, operationXDR []byte) (*SimulationResult, error)

	// Submit sends a fully signed serialized envelope to the network.
	Submit(ctx context.Context, envelopeXDR []byte) (txHash []byte, err error)

	// Status reports the current disposition of a submitted transaction.
	Status(ctx context.Context, txHash []byte) (*TxStatus, error)

	// RestoreFootprint builds a serialized restoration operation covering
	// exactly the archived ledger keys given.
	RestoreFootprint(ctx context.Context, ledgerKeys [][]byte) (operationXDR []byte, err error)
}

// AuthRequirement names one signer a simulated operation requires, with the
// nonce and ledger bound its authorization must carry.
type AuthRequirement struct {
	Signer           string // strkey account id
	Nonce            uint64
	ExpirationLedger uint32
}

// SimulationResult is the decoded outcome of Simulate.
type SimulationResult struct {
	// MinResourceFee is the minimum fee the footprint requires.
	MinResourceFee uint64

	// ReadOnlyKeys and ReadWriteKeys are the serialized ledger keys the
	// operation touches.
	ReadOnlyKeys  [][]byte
	ReadWriteKeys [][]byte

	// Auth lists the authorization entries required for submission.
	Auth []AuthRequirement

	// RestorePreamble names archived ledger keys that must be restored
	// before the operation can run. Empty means nothing is archived.
	RestorePreamble [][]byte

	// LatestLedger is the ledger sequence the simulation ran against.
	LatestLedger uint32
}

// TxState is the disposition of a submitted transaction.
type TxState int32

const (
	TxPending TxState = iota
	TxSuccess
	TxFailed
)

func (s TxState) String() string {
	switch s {
	case TxPending:
		return "pending"
	case TxSuccess:
		return "success"
	case TxFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TxStatus is the decoded outcome of Status.
type TxStatus struct {
	State TxState

	// ResultXDR carries the serialized result for terminal states, when the
	// node provides one.
	ResultXDR []byte

	// Ledger is the sequence the transaction landed in, for terminal states.
	Ledger uint32
}

// Terminal reports whether the state will never change again.
func (t *TxStatus) Terminal() bool {
	return t.State == TxSuccess || t.State == TxFailed
}
