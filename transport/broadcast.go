package transport

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
)

// NamedNode associates a Node with a stable endpoint name, for orchestration
// that needs per-endpoint reporting.
type NamedNode struct {
	Name string
	Node Node
}

// Broadcast submits to all configured nodes.
//
// Submit goes to every node and requires all returned hashes to match
// (otherwise ErrHashMismatch). Read-style operations use the first node.
//
// Use SubmitAll when you need the per-endpoint hash mapping.
type Broadcast struct {
	Nodes []NamedNode
}

var _ Node = Broadcast{}

// SubmitAll sends the same envelope to every node.
//
// It returns the agreed transaction hash and a map of endpoint name to the
// hash that endpoint reported. Divergence yields ErrHashMismatch with the
// partial map intact for auditing.
func (b Broadcast) SubmitAll(ctx context.Context, envelopeXDR []byte) ([]byte, map[string][]byte, error) {
	if len(b.Nodes) == 0 {
		return nil, nil, fmt.Errorf("transport: Broadcast has no nodes")
	}
	var agreed []byte
	out := make(map[string][]byte, len(b.Nodes))
	for _, n := range b.Nodes {
		if n.Node == nil {
			return nil, nil, fmt.Errorf("transport: nil node for endpoint %q", n.Name)
		}
		hash, err := n.Node.Submit(ctx, envelopeXDR)
		if err != nil {
			return nil, out, err
		}
		out[n.Name] = hash
		if agreed == nil {
			agreed = hash
			continue
		}
		if !bytes.Equal(hash, agreed) {
			return nil, out, fmt.Errorf("%w: %q returned %s, expected %s",
				ErrHashMismatch, n.Name, hex.EncodeToString(hash), hex.EncodeToString(agreed))
		}
	}
	return agreed, out, nil
}

func (b Broadcast) Submit(ctx context.Context, envelopeXDR []byte) ([]byte, error) {
	hash, _, err := b.SubmitAll(ctx, envelopeXDR)
	return hash, err
}

func (b Broadcast) Simulate(ctx context.Context, operationXDR []byte) (*SimulationResult, error) {
	n, err := b.first()
	if err != nil {
		return nil, err
	}
	return n.Simulate(ctx, operationXDR)
}

func (b Broadcast) Status(ctx context.Context, txHash []byte) (*TxStatus, error) {
	n, err := b.first()
	if err != nil {
		return nil, err
	}
	return n.Status(ctx, txHash)
}

func (b Broadcast) RestoreFootprint(ctx context.Context, ledgerKeys [][]byte) ([]byte, error) {
	n, err := b.first()
	if err != nil {
		return nil, err
	}
	return n.RestoreFootprint(ctx, ledgerKeys)
}

func (b Broadcast) first() (Node, error) {
	for _, n := range b.Nodes {
		if n.Node != nil {
			return n.Node, nil
		}
	}
	return nil, fmt.Errorf("transport: Broadcast has no nodes")
}
