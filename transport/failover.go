package transport

import (
	"context"
	"errors"
)

// Failover provides deterministic, ordered fallback across multiple nodes.
//
// Read-style operations (Simulate, Status, RestoreFootprint) try each node in
// slice order and move on when the node is unavailable; callers MUST supply a
// fixed order. Submit goes only to the first node: a submission is not
// revocable, so retrying it elsewhere could double-submit.
type Failover struct {
	Nodes []Node
}

var _ Node = Failover{}

var errNoNodes = errors.New("transport: Failover has no nodes")

func (f Failover) Simulate(ctx context.Context, operationXDR []byte) (*SimulationResult, error) {
	var out *SimulationResult
	err := f.eachUntil(ctx, func(n Node) error {
		var err error
		out, err = n.Simulate(ctx, operationXDR)
		return err
	})
	return out, err
}

func (f Failover) Submit(ctx context.Context, envelopeXDR []byte) ([]byte, error) {
	if len(f.Nodes) == 0 {
		return nil, errNoNodes
	}
	return f.Nodes[0].Submit(ctx, envelopeXDR)
}

func (f Failover) Status(ctx context.Context, txHash []byte) (*TxStatus, error) {
	var out *TxStatus
	err := f.eachUntil(ctx, func(n Node) error {
		var err error
		out, err = n.Status(ctx, txHash)
		return err
	})
	return out, err
}

func (f Failover) RestoreFootprint(ctx context.Context, ledgerKeys [][]byte) ([]byte, error) {
	var out []byte
	err := f.eachUntil(ctx, func(n Node) error {
		var err error
		out, err = n.RestoreFootprint(ctx, ledgerKeys)
		return err
	})
	return out, err
}

func (f Failover) eachUntil(ctx context.Context, call func(Node) error) error {
	if len(f.Nodes) == 0 {
		return errNoNodes
	}
	var last error
	for _, n := range f.Nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := call(n)
		if err == nil {
			return nil
		}
		if !IsUnavailable(err) {
			return err
		}
		last = err
	}
	return last
}
