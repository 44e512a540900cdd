package invoke

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lumenlab.io/lumen/contentid"
	"lumenlab.io/lumen/strkey"
)

func readVector(t *testing.T, name string) (data []byte, cid string) {
	t.Helper()
	root := filepath.Join("..", "testdata", "conformance", "invoke")
	data, err := os.ReadFile(filepath.Join(root, name+".xdr"))
	if err != nil {
		t.Fatalf("read vector: %v", err)
	}
	cidBytes, err := os.ReadFile(filepath.Join(root, name+".cid"))
	if err != nil {
		t.Fatalf("read cid: %v", err)
	}
	cid = strings.TrimSpace(string(cidBytes))
	if cid == "" {
		t.Fatalf("empty expected CID for %s", name)
	}
	return data, cid
}

func vectorFill(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestConformanceVectors_Operation(t *testing.T) {
	data, cid := readVector(t, "operation_1")

	if !contentid.Matches(cid, data) {
		t.Fatalf("vector bytes do not match recorded CID %s", cid)
	}

	op, err := DecodeOperation(data)
	if err != nil {
		t.Fatalf("DecodeOperation: %v", err)
	}
	wantSource := strkey.MustEncode(strkey.VersionAccountID, vectorFill(0x11, 32))
	if op.Source != wantSource {
		t.Fatalf("source: got %s want %s", op.Source, wantSource)
	}
	wantContract := strkey.MustEncode(strkey.VersionContract, vectorFill(0xC0, 32))
	if op.Contract != wantContract {
		t.Fatalf("contract: got %s want %s", op.Contract, wantContract)
	}
	if op.Function != "transfer" {
		t.Fatalf("function: got %q", op.Function)
	}
	if len(op.Args) != 2 || !bytes.Equal(op.Args[0], []byte{1, 2, 3, 4}) || !bytes.Equal(op.Args[1], []byte{0xAA}) {
		t.Fatalf("args mismatch: %v", op.Args)
	}

	// Canonical equivalence: re-encoding the parsed form yields the vector.
	again, err := op.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(again, data) {
		t.Fatalf("re-encoded bytes differ from vector")
	}
}

func TestConformanceVectors_Envelope(t *testing.T) {
	data, cid := readVector(t, "envelope_1")

	if !contentid.Matches(cid, data) {
		t.Fatalf("vector bytes do not match recorded CID %s", cid)
	}

	env, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if env.Fee != 500 || env.SequenceNumber != 101 {
		t.Fatalf("fee/seq: got %d/%d", env.Fee, env.SequenceNumber)
	}
	if len(env.Auth) != 2 {
		t.Fatalf("auth entries: got %d", len(env.Auth))
	}
	if env.Auth[0].Signed() {
		t.Fatalf("first auth entry must be pending")
	}
	if env.Auth[0].Nonce != 7 || env.Auth[0].ExpirationLedger != 600 {
		t.Fatalf("first auth entry: %+v", env.Auth[0])
	}
	second := env.Auth[1]
	if !second.Signed() || second.SignatureExpiration != 640 {
		t.Fatalf("second auth entry: %+v", second)
	}
	if !bytes.Equal(second.Signature, vectorFill(0x5A, 64)) {
		t.Fatalf("second auth signature mismatch")
	}
	if len(env.Signatures) != 1 {
		t.Fatalf("signatures: got %d", len(env.Signatures))
	}
	if env.Signatures[0].Hint != [4]byte{0xDE, 0xAD, 0xBE, 0xEF} {
		t.Fatalf("hint: %x", env.Signatures[0].Hint)
	}

	// The embedded operation is the operation vector.
	opData, _ := readVector(t, "operation_1")
	if !bytes.Equal(env.OperationXDR, opData) {
		t.Fatalf("embedded operation differs from operation vector")
	}

	again, err := env.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(again, data) {
		t.Fatalf("re-encoded bytes differ from vector")
	}
}
