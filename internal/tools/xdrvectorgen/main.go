// Command xdrvectorgen regenerates the wire-format conformance vectors under
// testdata/conformance/invoke. Vectors are deliberately signature-free dummy
// bytes: the codec treats signatures as opaque, so fixed fill patterns keep
// the vectors reproducible without key material.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"lumenlab.io/lumen/contentid"
	"lumenlab.io/lumen/invoke"
	"lumenlab.io/lumen/strkey"
)

func fill(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func account(b byte) string { return strkey.MustEncode(strkey.VersionAccountID, fill(b, 32)) }

func main() {
	root := filepath.Join("testdata", "conformance", "invoke")
	if err := os.MkdirAll(root, 0o755); err != nil {
		panic(err)
	}

	op := invoke.Operation{
		Source:   account(0x11),
		Contract: strkey.MustEncode(strkey.VersionContract, fill(0xC0, 32)),
		Function: "transfer",
		Args:     [][]byte{{0x01, 0x02, 0x03, 0x04}, {0xAA}},
	}
	opXDR, err := op.Encode()
	if err != nil {
		panic(err)
	}
	write(root, "operation_1", opXDR)

	env := invoke.Envelope{
		OperationXDR:   opXDR,
		Fee:            500,
		SequenceNumber: 101,
		Auth: []invoke.SignedAuthEntry{
			{Signer: account(0x11), Nonce: 7, ExpirationLedger: 600},
			{Signer: account(0x22), Nonce: 9, ExpirationLedger: 650,
				Signature: fill(0x5A, 64), SignatureExpiration: 640},
		},
		Signatures: []invoke.DecoratedSignature{
			{Hint: [4]byte{0xDE, 0xAD, 0xBE, 0xEF}, Signature: fill(0x33, 64)},
		},
	}
	envXDR, err := env.Encode()
	if err != nil {
		panic(err)
	}
	if !bytes.HasPrefix(envXDR[4:], opXDR) {
		panic("envelope does not embed the operation vector")
	}
	write(root, "envelope_1", envXDR)
}

func write(root, name string, data []byte) {
	xdrPath := filepath.Join(root, name+".xdr")
	if err := os.WriteFile(xdrPath, data, 0o644); err != nil {
		panic(err)
	}
	cid := contentid.ForBytes(data)
	if err := os.WriteFile(filepath.Join(root, name+".cid"), []byte(cid+"\n"), 0o644); err != nil {
		panic(err)
	}
	fmt.Printf("%s\t%s\n", xdrPath, cid)
}
