package transport

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

// scriptNode is a minimal Node for orchestration tests. The testkit package
// cannot be used here without an import cycle.
type scriptNode struct {
	sim        *SimulationResult
	simErr     error
	submitHash []byte
	submitErr  error
	status     *TxStatus
	statusErr  error
	restore    []byte
	restoreErr error

	simulateCalls int
	submitCalls   int
}

func (s *scriptNode) Simulate(ctx context.Context, operationXDR []byte) (*SimulationResult, error) {
	s.simulateCalls++
	return s.sim, s.simErr
}

func (s *scriptNode) Submit(ctx context.Context, envelopeXDR []byte) ([]byte, error) {
	s.submitCalls++
	return s.submitHash, s.submitErr
}

func (s *scriptNode) Status(ctx context.Context, txHash []byte) (*TxStatus, error) {
	return s.status, s.statusErr
}

func (s *scriptNode) RestoreFootprint(ctx context.Context, ledgerKeys [][]byte) ([]byte, error) {
	return s.restore, s.restoreErr
}

func TestFailover_SimulateFallsBackOnUnavailable(t *testing.T) {
	down := &scriptNode{simErr: ErrRequestTimeout}
	up := &scriptNode{sim: &SimulationResult{MinResourceFee: 42}}
	f := Failover{Nodes: []Node{down, up}}

	out, err := f.Simulate(context.Background(), []byte("op"))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if out.MinResourceFee != 42 {
		t.Fatalf("got result from wrong node: %+v", out)
	}
	if down.simulateCalls != 1 || up.simulateCalls != 1 {
		t.Fatalf("call counts: down=%d up=%d", down.simulateCalls, up.simulateCalls)
	}
}

func TestFailover_StopsOnClassifiedError(t *testing.T) {
	first := &scriptNode{statusErr: ErrNotFound}
	second := &scriptNode{status: &TxStatus{State: TxSuccess}}
	f := Failover{Nodes: []Node{first, second}}

	_, err := f.Status(context.Background(), []byte("hash"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFailover_ReturnsLastErrorWhenAllDown(t *testing.T) {
	f := Failover{Nodes: []Node{
		&scriptNode{simErr: ErrRequestTimeout},
		&scriptNode{simErr: ErrTooManyRequests},
	}}
	_, err := f.Simulate(context.Background(), []byte("op"))
	if !errors.Is(err, ErrTooManyRequests) {
		t.Fatalf("want last node's error, got %v", err)
	}
}

func TestFailover_SubmitOnlyFirstNode(t *testing.T) {
	first := &scriptNode{submitErr: ErrRequestTimeout}
	second := &scriptNode{submitHash: []byte("hash")}
	f := Failover{Nodes: []Node{first, second}}

	if _, err := f.Submit(context.Background(), []byte("env")); !errors.Is(err, ErrRequestTimeout) {
		t.Fatalf("want first node's error, got %v", err)
	}
	if second.submitCalls != 0 {
		t.Fatalf("Submit must not fall back: second node called %d times", second.submitCalls)
	}
}

func TestFailover_NoNodes(t *testing.T) {
	var f Failover
	if _, err := f.Simulate(context.Background(), nil); err == nil {
		t.Fatalf("expected error on empty node list")
	}
	if _, err := f.Submit(context.Background(), nil); err == nil {
		t.Fatalf("expected error on empty node list")
	}
}

func TestBroadcast_SubmitAllAgrees(t *testing.T) {
	b := Broadcast{Nodes: []NamedNode{
		{Name: "a", Node: &scriptNode{submitHash: []byte("h1")}},
		{Name: "b", Node: &scriptNode{submitHash: []byte("h1")}},
	}}
	hash, perNode, err := b.SubmitAll(context.Background(), []byte("env"))
	if err != nil {
		t.Fatalf("SubmitAll: %v", err)
	}
	if !bytes.Equal(hash, []byte("h1")) {
		t.Fatalf("agreed hash = %q", hash)
	}
	if len(perNode) != 2 || !bytes.Equal(perNode["a"], perNode["b"]) {
		t.Fatalf("per-node map: %v", perNode)
	}
}

func TestBroadcast_SubmitAllDivergence(t *testing.T) {
	b := Broadcast{Nodes: []NamedNode{
		{Name: "a", Node: &scriptNode{submitHash: []byte("h1")}},
		{Name: "b", Node: &scriptNode{submitHash: []byte("h2")}},
	}}
	_, perNode, err := b.SubmitAll(context.Background(), []byte("env"))
	if !errors.Is(err, ErrHashMismatch) {
		t.Fatalf("want ErrHashMismatch, got %v", err)
	}
	if len(perNode) != 2 {
		t.Fatalf("partial map should still carry both endpoints: %v", perNode)
	}
}

func TestBroadcast_ReadsUseFirstNode(t *testing.T) {
	first := &scriptNode{sim: &SimulationResult{LatestLedger: 5}}
	second := &scriptNode{sim: &SimulationResult{LatestLedger: 9}}
	b := Broadcast{Nodes: []NamedNode{{Name: "a", Node: first}, {Name: "b", Node: second}}}

	out, err := b.Simulate(context.Background(), []byte("op"))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if out.LatestLedger != 5 {
		t.Fatalf("read did not use first node: %+v", out)
	}
	if second.simulateCalls != 0 {
		t.Fatalf("second node should not see reads")
	}
}
