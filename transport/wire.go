package transport

import (
	"fmt"

	"lumenlab.io/lumen/strkey"
	"lumenlab.io/lumen/xdr"
)

// Wire forms for the records that cross transports as opaque bytes. Every
// backend shares these, so the codec stays the single interpreter of wire
// bytes regardless of how a backend frames them (JSON fields, gRPC messages).

// EncodeSimulationResult serializes r.
func EncodeSimulationResult(r *SimulationResult) ([]byte, error) {
	var w xdr.Writer
	w.WriteUint64(r.MinResourceFee)
	if err := writeKeyList(&w, r.ReadOnlyKeys); err != nil {
		return nil, err
	}
	if err := writeKeyList(&w, r.ReadWriteKeys); err != nil {
		return nil, err
	}
	w.WriteUint32(uint32(len(r.Auth)))
	for _, a := range r.Auth {
		if !strkey.IsValidAccountID(a.Signer) {
			return nil, fmt.Errorf("transport: auth signer %q is not an account id", a.Signer)
		}
		if err := w.WriteString(a.Signer); err != nil {
			return nil, err
		}
		w.WriteUint64(a.Nonce)
		w.WriteUint32(a.ExpirationLedger)
	}
	if err := writeKeyList(&w, r.RestorePreamble); err != nil {
		return nil, err
	}
	w.WriteUint32(r.LatestLedger)
	return w.Bytes(), nil
}

// DecodeSimulationResult parses the wire form, rejecting malformed signers.
func DecodeSimulationResult(b []byte) (*SimulationResult, error) {
	r := xdr.NewReader(b)
	var out SimulationResult
	var err error
	if out.MinResourceFee, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if out.ReadOnlyKeys, err = readKeyList(r); err != nil {
		return nil, err
	}
	if out.ReadWriteKeys, err = readKeyList(r); err != nil {
		return nil, err
	}
	authCount, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < authCount; i++ {
		var a AuthRequirement
		if a.Signer, err = r.ReadString(); err != nil {
			return nil, err
		}
		if !strkey.IsValidAccountID(a.Signer) {
			return nil, fmt.Errorf("transport: auth signer %q is not an account id", a.Signer)
		}
		if a.Nonce, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if a.ExpirationLedger, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		out.Auth = append(out.Auth, a)
	}
	if out.RestorePreamble, err = readKeyList(r); err != nil {
		return nil, err
	}
	if out.LatestLedger, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return &out, nil
}

// EncodeTxStatus serializes t.
func EncodeTxStatus(t *TxStatus) ([]byte, error) {
	var w xdr.Writer
	w.WriteInt32(int32(t.State))
	if err := w.WriteVarOpaque(t.ResultXDR); err != nil {
		return nil, err
	}
	w.WriteUint32(t.Ledger)
	return w.Bytes(), nil
}

// DecodeTxStatus parses the wire form.
func DecodeTxStatus(b []byte) (*TxStatus, error) {
	r := xdr.NewReader(b)
	var out TxStatus
	state, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if state < int32(TxPending) || state > int32(TxFailed) {
		return nil, fmt.Errorf("transport: unknown transaction state %d", state)
	}
	out.State = TxState(state)
	result, err := r.ReadVarOpaque()
	if err != nil {
		return nil, err
	}
	if len(result) > 0 {
		out.ResultXDR = append([]byte(nil), result...)
	}
	if out.Ledger, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return &out, nil
}

// EncodeKeyList serializes a ledger-key list for backends that frame it as
// one opaque message.
func EncodeKeyList(keys [][]byte) ([]byte, error) {
	var w xdr.Writer
	if err := writeKeyList(&w, keys); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeKeyList parses a ledger-key list.
func DecodeKeyList(b []byte) ([][]byte, error) {
	r := xdr.NewReader(b)
	keys, err := readKeyList(r)
	if err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return keys, nil
}

func writeKeyList(w *xdr.Writer, keys [][]byte) error {
	w.WriteUint32(uint32(len(keys)))
	for _, k := range keys {
		if err := w.WriteVarOpaque(k); err != nil {
			return err
		}
	}
	return nil
}

func readKeyList(r *xdr.Reader) ([][]byte, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	var keys [][]byte
	for i := uint32(0); i < count; i++ {
		k, err := r.ReadVarOpaque()
		if err != nil {
			return nil, err
		}
		keys = append(keys, append([]byte(nil), k...))
	}
	return keys, nil
}
