package transport

import (
	"bytes"
	"reflect"
	"testing"

	"lumenlab.io/lumen/strkey"
)

func validSigner(fill byte) string {
	b := make([]byte, 32)
	for i := range b {
		b[i] = fill
	}
	return strkey.MustEncode(strkey.VersionAccountID, b)
}

func TestSimulationResult_WireRoundTrip(t *testing.T) {
	in := &SimulationResult{
		MinResourceFee: 981,
		ReadOnlyKeys:   [][]byte{[]byte("a"), []byte("bcd")},
		ReadWriteKeys:  [][]byte{[]byte("efgh")},
		Auth: []AuthRequirement{
			{Signer: validSigner(0x01), Nonce: 1, ExpirationLedger: 10},
			{Signer: validSigner(0x02), Nonce: 2, ExpirationLedger: 20},
		},
		RestorePreamble: [][]byte{[]byte("archived-key")},
		LatestLedger:    777,
	}
	b, err := EncodeSimulationResult(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeSimulationResult(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\nin  %+v\nout %+v", in, out)
	}
}

func TestSimulationResult_EmptyRoundTrip(t *testing.T) {
	b, err := EncodeSimulationResult(&SimulationResult{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeSimulationResult(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.MinResourceFee != 0 || len(out.Auth) != 0 || len(out.RestorePreamble) != 0 {
		t.Fatalf("empty result mutated: %+v", out)
	}
}

func TestSimulationResult_RejectsBadSigner(t *testing.T) {
	if _, err := EncodeSimulationResult(&SimulationResult{
		Auth: []AuthRequirement{{Signer: "not-a-key"}},
	}); err == nil {
		t.Fatalf("encode accepted a malformed signer")
	}
}

func TestSimulationResult_RejectsTrailingBytes(t *testing.T) {
	b, err := EncodeSimulationResult(&SimulationResult{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeSimulationResult(append(b, 0, 0, 0, 0)); err == nil {
		t.Fatalf("decode accepted trailing bytes")
	}
}

func TestTxStatus_WireRoundTrip(t *testing.T) {
	for _, in := range []*TxStatus{
		{State: TxPending},
		{State: TxSuccess, ResultXDR: []byte("result"), Ledger: 12},
		{State: TxFailed, Ledger: 13},
	} {
		b, err := EncodeTxStatus(in)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		out, err := DecodeTxStatus(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.State != in.State || !bytes.Equal(out.ResultXDR, in.ResultXDR) || out.Ledger != in.Ledger {
			t.Fatalf("round trip mismatch: %+v vs %+v", in, out)
		}
	}
}

func TestTxStatus_RejectsUnknownState(t *testing.T) {
	b, err := EncodeTxStatus(&TxStatus{State: TxState(9)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeTxStatus(b); err == nil {
		t.Fatalf("decode accepted an unknown state")
	}
}
