package testkit

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"lumenlab.io/lumen/strkey"
	"lumenlab.io/lumen/transport"
)

// Wrap builds the transport under test around a scripted backend. Real
// backends (jsonrpc, grpcnode) stand up their server side over the given
// Node and return the client side; the suite then checks that everything
// crossing the wire survives intact.
type Wrap func(t *testing.T, backend *Node) transport.Node

// RunNodeConformance exercises the shared transport contract.
func RunNodeConformance(t *testing.T, wrap Wrap) {
	t.Helper()

	signer := strkey.MustEncode(strkey.VersionAccountID, bytesN(32, 0x11))

	t.Run("SimulateRoundTrip", func(t *testing.T) {
		backend := &Node{
			Simulations: []*transport.SimulationResult{{
				MinResourceFee:  4242,
				ReadOnlyKeys:    [][]byte{[]byte("ro-key")},
				ReadWriteKeys:   [][]byte{[]byte("rw-key-1"), []byte("rw-key-2")},
				Auth:            []transport.AuthRequirement{{Signer: signer, Nonce: 7, ExpirationLedger: 100}},
				RestorePreamble: [][]byte{[]byte("archived")},
				LatestLedger:    555,
			}},
		}
		node := wrap(t, backend)
		got, err := node.Simulate(context.Background(), []byte("op-bytes"))
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		if !reflect.DeepEqual(got, backend.Simulations[0]) {
			t.Fatalf("simulation result mutated in transit:\ngot  %+v\nwant %+v", got, backend.Simulations[0])
		}
	})

	t.Run("SubmitReturnsBackendHash", func(t *testing.T) {
		backend := &Node{}
		node := wrap(t, backend)
		envelope := []byte("signed-envelope")
		hash, err := node.Submit(context.Background(), envelope)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if !bytes.Equal(hash, Hash(envelope)) {
			t.Fatalf("hash mutated in transit")
		}
		if len(backend.Submitted) != 1 || !bytes.Equal(backend.Submitted[0], envelope) {
			t.Fatalf("envelope mutated in transit")
		}
	})

	t.Run("StatusSequence", func(t *testing.T) {
		backend := &Node{}
		envelope := []byte("watched-envelope")
		backend.ScriptStatus(envelope,
			&transport.TxStatus{State: transport.TxPending},
			&transport.TxStatus{State: transport.TxSuccess, ResultXDR: []byte("result"), Ledger: 9},
		)
		node := wrap(t, backend)
		hash := Hash(envelope)
		first, err := node.Status(context.Background(), hash)
		if err != nil || first.State != transport.TxPending {
			t.Fatalf("first status: %+v %v", first, err)
		}
		second, err := node.Status(context.Background(), hash)
		if err != nil || second.State != transport.TxSuccess || !bytes.Equal(second.ResultXDR, []byte("result")) || second.Ledger != 9 {
			t.Fatalf("second status: %+v %v", second, err)
		}
	})

	t.Run("StatusUnknownHashIsNotFound", func(t *testing.T) {
		node := wrap(t, &Node{})
		_, err := node.Status(context.Background(), bytesN(32, 0xEE))
		if !transport.IsNotFound(err) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RestoreFootprint", func(t *testing.T) {
		backend := &Node{RestoreOp: []byte("restoration-op")}
		node := wrap(t, backend)
		keys := [][]byte{[]byte("k1"), []byte("k2")}
		op, err := node.RestoreFootprint(context.Background(), keys)
		if err != nil {
			t.Fatalf("RestoreFootprint: %v", err)
		}
		if !bytes.Equal(op, []byte("restoration-op")) {
			t.Fatalf("restoration op mutated in transit")
		}
		if len(backend.RestoredKeys) != 1 || !reflect.DeepEqual(backend.RestoredKeys[0], keys) {
			t.Fatalf("keys mutated in transit: %+v", backend.RestoredKeys)
		}
	})
}

func bytesN(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}
