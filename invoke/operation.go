package invoke

import (
	"fmt"

	"lumenlab.io/lumen/strkey"
	"lumenlab.io/lumen/xdr"
)

// Operation is a single contract function call.
//
// Args carry already-encoded wire values; the lifecycle treats them as
// opaque and never interprets their contents.
type Operation struct {
	// Source is the invoking account, in text form. When empty, the
	// lifecycle fills it from its source key pair.
	Source string

	// Contract is the target contract identifier, in text form.
	Contract string

	// Function is the contract function name.
	Function string

	Args [][]byte
}

// Encode serializes the operation to its wire form.
func (op *Operation) Encode() ([]byte, error) {
	source, err := strkey.DecodeAccountID(op.Source)
	if err != nil {
		return nil, wrapError(KindAddress, CodeBadAddress,
			fmt.Sprintf("invoke: bad source account %q", op.Source), err)
	}
	contract, err := strkey.DecodeContract(op.Contract)
	if err != nil {
		return nil, wrapError(KindAddress, CodeBadAddress,
			fmt.Sprintf("invoke: bad contract id %q", op.Contract), err)
	}
	var w xdr.Writer
	w.WriteFixedOpaque(source)
	w.WriteFixedOpaque(contract)
	if err := w.WriteString(op.Function); err != nil {
		return nil, wrapError(KindCodec, CodeEncode, "invoke: encode function name", err)
	}
	w.WriteUint32(uint32(len(op.Args)))
	for _, a := range op.Args {
		if err := w.WriteVarOpaque(a); err != nil {
			return nil, wrapError(KindCodec, CodeEncode, "invoke: encode argument", err)
		}
	}
	return w.Bytes(), nil
}

// DecodeOperation parses an operation from its wire form.
func DecodeOperation(b []byte) (*Operation, error) {
	r := xdr.NewReader(b)
	op, err := readOperation(r)
	if err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: trailing bytes after operation", err)
	}
	return op, nil
}

func readOperation(r *xdr.Reader) (*Operation, error) {
	source, err := r.ReadFixedOpaque(32)
	if err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode source account", err)
	}
	contract, err := r.ReadFixedOpaque(32)
	if err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode contract id", err)
	}
	fn, err := r.ReadString()
	if err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode function name", err)
	}
	n, err := r.ReadUint32()
	if err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode argument count", err)
	}
	op := &Operation{Function: fn}
	for i := uint32(0); i < n; i++ {
		a, err := r.ReadVarOpaque()
		if err != nil {
			return nil, wrapError(KindCodec, CodeDecode,
				fmt.Sprintf("invoke: decode argument %d", i), err)
		}
		op.Args = append(op.Args, a)
	}
	if op.Source, err = strkey.EncodeAccountID(source); err != nil {
		return nil, wrapError(KindAddress, CodeBadAddress, "invoke: re-encode source account", err)
	}
	if op.Contract, err = strkey.EncodeContract(contract); err != nil {
		return nil, wrapError(KindAddress, CodeBadAddress, "invoke: re-encode contract id", err)
	}
	return op, nil
}
