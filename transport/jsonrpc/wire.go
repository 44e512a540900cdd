package jsonrpc

import (
	"encoding/base64"
	"fmt"
	"strings"

	"lumenlab.io/lumen/transport"
)

// Request/response records for each method. All XDR fields are base64.

type simulateParams struct {
	OperationXDR string `json:"operationXdr"`
}

type authEntry struct {
	Signer           string `json:"signer"`
	Nonce            uint64 `json:"nonce"`
	ExpirationLedger uint32 `json:"expirationLedger"`
}

type simulateResult struct {
	MinResourceFee  uint64      `json:"minResourceFee"`
	ReadOnlyKeys    []string    `json:"readOnlyKeys,omitempty"`
	ReadWriteKeys   []string    `json:"readWriteKeys,omitempty"`
	Auth            []authEntry `json:"auth,omitempty"`
	RestorePreamble []string    `json:"restorePreamble,omitempty"`
	LatestLedger    uint32      `json:"latestLedger"`
}

type sendParams struct {
	TransactionXDR string `json:"transactionXdr"`
}

type sendResult struct {
	Hash string `json:"hash"`
}

type getTxParams struct {
	Hash string `json:"hash"`
}

type getTxResult struct {
	Status    string `json:"status"`
	ResultXDR string `json:"resultXdr,omitempty"`
	Ledger    uint32 `json:"ledger,omitempty"`
}

type restoreParams struct {
	Keys []string `json:"keys"`
}

type restoreResult struct {
	OperationXDR string `json:"operationXdr"`
}

// Transaction status strings on the wire.
const (
	statusPending = "PENDING"
	statusSuccess = "SUCCESS"
	statusFailed  = "FAILED"
)

func encodeKeys(keys [][]byte) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = base64.StdEncoding.EncodeToString(k)
	}
	return out
}

func decodeKeys(keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		b, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, fmt.Errorf("jsonrpc: malformed key %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

func (r *simulateResult) toTransport() (*transport.SimulationResult, error) {
	ro, err := decodeKeys(r.ReadOnlyKeys)
	if err != nil {
		return nil, &transport.RPCError{Err: err}
	}
	rw, err := decodeKeys(r.ReadWriteKeys)
	if err != nil {
		return nil, &transport.RPCError{Err: err}
	}
	pre, err := decodeKeys(r.RestorePreamble)
	if err != nil {
		return nil, &transport.RPCError{Err: err}
	}
	out := &transport.SimulationResult{
		MinResourceFee:  r.MinResourceFee,
		ReadOnlyKeys:    ro,
		ReadWriteKeys:   rw,
		RestorePreamble: pre,
		LatestLedger:    r.LatestLedger,
	}
	for _, a := range r.Auth {
		out.Auth = append(out.Auth, transport.AuthRequirement{
			Signer:           a.Signer,
			Nonce:            a.Nonce,
			ExpirationLedger: a.ExpirationLedger,
		})
	}
	return out, nil
}

func simulateResultFrom(sim *transport.SimulationResult) simulateResult {
	out := simulateResult{
		MinResourceFee:  sim.MinResourceFee,
		ReadOnlyKeys:    encodeKeys(sim.ReadOnlyKeys),
		ReadWriteKeys:   encodeKeys(sim.ReadWriteKeys),
		RestorePreamble: encodeKeys(sim.RestorePreamble),
		LatestLedger:    sim.LatestLedger,
	}
	for _, a := range sim.Auth {
		out.Auth = append(out.Auth, authEntry{
			Signer:           a.Signer,
			Nonce:            a.Nonce,
			ExpirationLedger: a.ExpirationLedger,
		})
	}
	return out
}

func (r *getTxResult) toTransport() (*transport.TxStatus, error) {
	var state transport.TxState
	switch strings.ToUpper(r.Status) {
	case statusPending:
		state = transport.TxPending
	case statusSuccess:
		state = transport.TxSuccess
	case statusFailed:
		state = transport.TxFailed
	default:
		return nil, &transport.RPCError{Body: r.Status, Err: fmt.Errorf("jsonrpc: unknown transaction status %q", r.Status)}
	}
	var result []byte
	if r.ResultXDR != "" {
		b, err := base64.StdEncoding.DecodeString(r.ResultXDR)
		if err != nil {
			return nil, &transport.RPCError{Body: r.ResultXDR, Err: fmt.Errorf("jsonrpc: malformed result: %w", err)}
		}
		result = b
	}
	return &transport.TxStatus{State: state, ResultXDR: result, Ledger: r.Ledger}, nil
}

func getTxResultFrom(status *transport.TxStatus) getTxResult {
	out := getTxResult{Ledger: status.Ledger}
	switch status.State {
	case transport.TxSuccess:
		out.Status = statusSuccess
	case transport.TxFailed:
		out.Status = statusFailed
	default:
		out.Status = statusPending
	}
	if len(status.ResultXDR) > 0 {
		out.ResultXDR = base64.StdEncoding.EncodeToString(status.ResultXDR)
	}
	return out
}
