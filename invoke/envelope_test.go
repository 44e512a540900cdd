package invoke

import (
	"bytes"
	"reflect"
	"testing"

	"lumenlab.io/lumen/crypto/circlsig"
	"lumenlab.io/lumen/strkey"
)

func mustAccount(t *testing.T, fill byte) string {
	t.Helper()
	s, err := strkey.EncodeAccountID(bytes.Repeat([]byte{fill}, 32))
	if err != nil {
		t.Fatalf("EncodeAccountID: %v", err)
	}
	return s
}

func TestOperation_RoundTrip(t *testing.T) {
	in := &Operation{
		Source:   mustAccount(t, 0x11),
		Contract: testContract(t),
		Function: "swap",
		Args:     [][]byte{{0, 0, 0, 1}, {0xAB}, nil},
	}
	raw, err := in.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := DecodeOperation(raw)
	if err != nil {
		t.Fatalf("DecodeOperation: %v", err)
	}
	if out.Source != in.Source || out.Contract != in.Contract || out.Function != in.Function {
		t.Fatalf("header mismatch: %+v", out)
	}
	if len(out.Args) != 3 || !bytes.Equal(out.Args[0], in.Args[0]) || !bytes.Equal(out.Args[1], in.Args[1]) || len(out.Args[2]) != 0 {
		t.Fatalf("args mismatch: %v", out.Args)
	}
}

func TestOperation_BadAddressesRejected(t *testing.T) {
	op := &Operation{Source: "garbage", Contract: testContract(t), Function: "f"}
	if _, err := op.Encode(); !IsKind(err, KindAddress) {
		t.Fatalf("want Address kind, got %v", err)
	}
	op = &Operation{Source: mustAccount(t, 1), Contract: mustAccount(t, 2), Function: "f"}
	if _, err := op.Encode(); !IsKind(err, KindAddress) {
		t.Fatalf("contract field must reject an account key, got %v", err)
	}
}

func TestDecodeOperation_Truncated(t *testing.T) {
	op := &Operation{Source: mustAccount(t, 1), Contract: testContract(t), Function: "f"}
	raw, err := op.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, cut := range []int{1, 4, 33, len(raw) - 1} {
		if _, err := DecodeOperation(raw[:cut]); !IsKind(err, KindCodec) {
			t.Fatalf("cut %d: want Codec kind, got %v", cut, err)
		}
	}
	if _, err := DecodeOperation(append(raw, 0, 0, 0, 0)); !IsKind(err, KindCodec) {
		t.Fatalf("trailing bytes: want Codec kind, got %v", err)
	}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	in := &Envelope{
		OperationXDR:   []byte("operation-bytes"),
		Fee:            512,
		SequenceNumber: 9001,
		Auth: []SignedAuthEntry{
			{Signer: mustAccount(t, 0x01), Nonce: 7, ExpirationLedger: 100},
			{
				Signer:              mustAccount(t, 0x02),
				Nonce:               8,
				ExpirationLedger:    100,
				Signature:           bytes.Repeat([]byte{0xEE}, 64),
				SignatureExpiration: 90,
			},
		},
		Signatures: []DecoratedSignature{
			{Hint: [4]byte{1, 2, 3, 4}, Signature: bytes.Repeat([]byte{0xDD}, 64)},
		},
	}
	raw, err := in.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\nin  %+v\nout %+v", in, out)
	}
}

func TestEnvelope_SignatureBaseExcludesSignatures(t *testing.T) {
	signer := circlsig.Signer{}
	networkID := testNetwork.ID(signer)
	env := &Envelope{OperationXDR: []byte("op"), Fee: 1, SequenceNumber: 2}

	before, err := env.SignatureBase(signer, networkID)
	if err != nil {
		t.Fatalf("SignatureBase: %v", err)
	}
	env.Signatures = append(env.Signatures, DecoratedSignature{Signature: bytes.Repeat([]byte{1}, 64)})
	after, err := env.SignatureBase(signer, networkID)
	if err != nil {
		t.Fatalf("SignatureBase: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("signature base must not cover signatures")
	}
}

func TestEnvelope_SignatureBaseBindsNetwork(t *testing.T) {
	signer := circlsig.Signer{}
	env := &Envelope{OperationXDR: []byte("op"), Fee: 1, SequenceNumber: 2}

	testBase, err := env.SignatureBase(signer, testNetwork.ID(signer))
	if err != nil {
		t.Fatalf("SignatureBase: %v", err)
	}
	publicBase, err := env.SignatureBase(signer, Network{Passphrase: PublicPassphrase}.ID(signer))
	if err != nil {
		t.Fatalf("SignatureBase: %v", err)
	}
	if bytes.Equal(testBase, publicBase) {
		t.Fatalf("signature base must differ across networks")
	}
}

func TestEnvelope_SignatureBaseRejectsShortNetworkID(t *testing.T) {
	env := &Envelope{OperationXDR: []byte("op")}
	if _, err := env.SignatureBase(circlsig.Signer{}, []byte{1, 2, 3}); !IsKind(err, KindCodec) {
		t.Fatalf("want Codec kind, got %v", err)
	}
}
