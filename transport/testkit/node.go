// Package testkit provides a scripted in-memory transport.Node and a
// conformance suite that every real transport backend must pass.
package testkit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"lumenlab.io/lumen/transport"
)

// Node is a scripted in-memory ledger endpoint.
//
// Simulations and per-hash Statuses are consumed in order; the last entry
// repeats once the script runs out. The zero value answers every call with
// an empty success, which is enough for transport plumbing tests; lifecycle
// tests script it explicitly.
//
// Node is safe for concurrent use.
type Node struct {
	mu sync.Mutex

	// Simulations are returned by successive Simulate calls.
	Simulations []*transport.SimulationResult

	// SimulateErr, when set, fails every Simulate call.
	SimulateErr error

	// SubmitErr, when set, fails every Submit call.
	SubmitErr error

	// Statuses maps a hex transaction hash to the sequence of statuses
	// successive Status calls observe.
	Statuses map[string][]*transport.TxStatus

	// DefaultStatus, when set, answers Status calls for any hash that has
	// no scripted sequence. Unset, such calls fail with ErrNotFound.
	DefaultStatus *transport.TxStatus

	// RestoreOp is returned by RestoreFootprint.
	RestoreOp []byte
	// RestoreErr, when set, fails every RestoreFootprint call.
	RestoreErr error

	// Recorded traffic.
	SimulateCalls int
	Submitted     [][]byte
	StatusCalls   int
	RestoredKeys  [][][]byte
}

var _ transport.Node = (*Node)(nil)

// Hash returns the transaction hash this node assigns to an envelope.
func Hash(envelopeXDR []byte) []byte {
	sum := sha256.Sum256(envelopeXDR)
	return sum[:]
}

// ScriptStatus appends statuses for the transaction hash of envelopeXDR.
func (n *Node) ScriptStatus(envelopeXDR []byte, statuses ...*transport.TxStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Statuses == nil {
		n.Statuses = make(map[string][]*transport.TxStatus)
	}
	key := hex.EncodeToString(Hash(envelopeXDR))
	n.Statuses[key] = append(n.Statuses[key], statuses...)
}

func (n *Node) Simulate(ctx context.Context, operationXDR []byte) (*transport.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.SimulateCalls++
	if n.SimulateErr != nil {
		return nil, n.SimulateErr
	}
	if len(n.Simulations) == 0 {
		return &transport.SimulationResult{}, nil
	}
	r := n.Simulations[0]
	if len(n.Simulations) > 1 {
		n.Simulations = n.Simulations[1:]
	}
	return r, nil
}

func (n *Node) Submit(ctx context.Context, envelopeXDR []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.SubmitErr != nil {
		return nil, n.SubmitErr
	}
	n.Submitted = append(n.Submitted, append([]byte(nil), envelopeXDR...))
	return Hash(envelopeXDR), nil
}

func (n *Node) Status(ctx context.Context, txHash []byte) (*transport.TxStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.StatusCalls++
	seq := n.Statuses[hex.EncodeToString(txHash)]
	if len(seq) == 0 {
		if n.DefaultStatus != nil {
			return n.DefaultStatus, nil
		}
		return nil, transport.ErrNotFound
	}
	s := seq[0]
	if len(seq) > 1 {
		n.Statuses[hex.EncodeToString(txHash)] = seq[1:]
	}
	return s, nil
}

func (n *Node) RestoreFootprint(ctx context.Context, ledgerKeys [][]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.RestoreErr != nil {
		return nil, n.RestoreErr
	}
	keys := make([][]byte, 0, len(ledgerKeys))
	for _, k := range ledgerKeys {
		keys = append(keys, append([]byte(nil), k...))
	}
	n.RestoredKeys = append(n.RestoredKeys, keys)
	if n.RestoreOp != nil {
		return n.RestoreOp, nil
	}
	// A recognizable default restoration operation.
	return append([]byte("restore:"), byte(len(ledgerKeys))), nil
}
