package invoke

import (
	"fmt"

	"lumenlab.io/lumen/crypto"
	"lumenlab.io/lumen/strkey"
	"lumenlab.io/lumen/xdr"
)

// Domain separation tags for the two signature bases.
const (
	txSignatureTag   = "lumen-tx-v1"
	authSignatureTag = "lumen-auth-v1"
)

// SignedAuthEntry is an authorization requirement plus the signature a
// non-invoking signer attached to it. Signature is empty while the entry is
// still pending.
type SignedAuthEntry struct {
	Signer           string
	Nonce            uint64
	ExpirationLedger uint32

	Signature           []byte
	SignatureExpiration uint32
}

// Signed reports whether the entry carries a signature.
func (e *SignedAuthEntry) Signed() bool { return len(e.Signature) > 0 }

// DecoratedSignature is an envelope signature plus the trailing public-key
// hint that lets a verifier pick the matching signer.
type DecoratedSignature struct {
	Hint      [4]byte
	Signature []byte
}

// Envelope is a fully assembled transaction: the serialized operation, its
// resource fee and sequence number, the authorization entries, and the
// envelope signatures.
type Envelope struct {
	OperationXDR   []byte
	Fee            uint64
	SequenceNumber uint64
	Auth           []SignedAuthEntry
	Signatures     []DecoratedSignature
}

// Encode serializes the envelope, signatures included.
func (e *Envelope) Encode() ([]byte, error) {
	var w xdr.Writer
	if err := e.writeBody(&w); err != nil {
		return nil, err
	}
	w.WriteUint32(uint32(len(e.Signatures)))
	for _, s := range e.Signatures {
		w.WriteFixedOpaque(s.Hint[:])
		if err := w.WriteVarOpaque(s.Signature); err != nil {
			return nil, wrapError(KindCodec, CodeEncode, "invoke: encode signature", err)
		}
	}
	return w.Bytes(), nil
}

// SignatureBase returns the digest the source account signs: the network ID
// followed by a tag and the envelope body, excluding signatures.
func (e *Envelope) SignatureBase(signer crypto.Signer, networkID []byte) ([]byte, error) {
	var w xdr.Writer
	if err := w.WriteFixedOpaqueLen(networkID, crypto.DigestSize); err != nil {
		return nil, wrapError(KindCodec, CodeEncode, "invoke: bad network id", err)
	}
	if err := w.WriteString(txSignatureTag); err != nil {
		return nil, wrapError(KindCodec, CodeEncode, "invoke: encode signature tag", err)
	}
	if err := e.writeBody(&w); err != nil {
		return nil, err
	}
	return signer.Hash(w.Bytes()), nil
}

func (e *Envelope) writeBody(w *xdr.Writer) error {
	if err := w.WriteVarOpaque(e.OperationXDR); err != nil {
		return wrapError(KindCodec, CodeEncode, "invoke: encode operation", err)
	}
	w.WriteUint64(e.Fee)
	w.WriteUint64(e.SequenceNumber)
	w.WriteUint32(uint32(len(e.Auth)))
	for i := range e.Auth {
		if err := writeAuthEntry(w, &e.Auth[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeAuthEntry(w *xdr.Writer, entry *SignedAuthEntry) error {
	signer, err := strkey.DecodeAccountID(entry.Signer)
	if err != nil {
		return wrapError(KindAddress, CodeBadAddress,
			fmt.Sprintf("invoke: bad auth signer %q", entry.Signer), err)
	}
	w.WriteFixedOpaque(signer)
	w.WriteUint64(entry.Nonce)
	w.WriteUint32(entry.ExpirationLedger)
	if err := w.WriteVarOpaque(entry.Signature); err != nil {
		return wrapError(KindCodec, CodeEncode, "invoke: encode auth signature", err)
	}
	w.WriteUint32(entry.SignatureExpiration)
	return nil
}

// DecodeEnvelope parses an envelope from its wire form.
func DecodeEnvelope(b []byte) (*Envelope, error) {
	r := xdr.NewReader(b)
	e := &Envelope{}
	var err error
	if e.OperationXDR, err = r.ReadVarOpaque(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode operation", err)
	}
	if e.Fee, err = r.ReadUint64(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode fee", err)
	}
	if e.SequenceNumber, err = r.ReadUint64(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode sequence number", err)
	}
	nAuth, err := r.ReadUint32()
	if err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode auth count", err)
	}
	for i := uint32(0); i < nAuth; i++ {
		entry, err := readAuthEntry(r)
		if err != nil {
			return nil, err
		}
		e.Auth = append(e.Auth, *entry)
	}
	nSigs, err := r.ReadUint32()
	if err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode signature count", err)
	}
	for i := uint32(0); i < nSigs; i++ {
		var s DecoratedSignature
		hint, err := r.ReadFixedOpaque(4)
		if err != nil {
			return nil, wrapError(KindCodec, CodeDecode, "invoke: decode signature hint", err)
		}
		copy(s.Hint[:], hint)
		if s.Signature, err = r.ReadVarOpaque(); err != nil {
			return nil, wrapError(KindCodec, CodeDecode, "invoke: decode signature", err)
		}
		e.Signatures = append(e.Signatures, s)
	}
	if err := r.Done(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: trailing bytes after envelope", err)
	}
	return e, nil
}

func readAuthEntry(r *xdr.Reader) (*SignedAuthEntry, error) {
	signer, err := r.ReadFixedOpaque(32)
	if err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode auth signer", err)
	}
	entry := &SignedAuthEntry{}
	if entry.Signer, err = strkey.EncodeAccountID(signer); err != nil {
		return nil, wrapError(KindAddress, CodeBadAddress, "invoke: re-encode auth signer", err)
	}
	if entry.Nonce, err = r.ReadUint64(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode auth nonce", err)
	}
	if entry.ExpirationLedger, err = r.ReadUint32(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode auth expiration", err)
	}
	if entry.Signature, err = r.ReadVarOpaque(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode auth signature", err)
	}
	if len(entry.Signature) == 0 {
		entry.Signature = nil
	}
	if entry.SignatureExpiration, err = r.ReadUint32(); err != nil {
		return nil, wrapError(KindCodec, CodeDecode, "invoke: decode auth signature expiration", err)
	}
	return entry, nil
}

// authSignatureBase returns the digest a non-invoking signer signs for one
// authorization entry. The expiration bound is part of the signed material,
// so a signature cannot be replayed past the ledger it was granted for.
func authSignatureBase(signer crypto.Signer, networkID, operationXDR []byte, entry *SignedAuthEntry, validUntilLedger uint32) ([]byte, error) {
	var w xdr.Writer
	if err := w.WriteFixedOpaqueLen(networkID, crypto.DigestSize); err != nil {
		return nil, wrapError(KindCodec, CodeEncode, "invoke: bad network id", err)
	}
	if err := w.WriteString(authSignatureTag); err != nil {
		return nil, wrapError(KindCodec, CodeEncode, "invoke: encode auth tag", err)
	}
	w.WriteUint64(entry.Nonce)
	w.WriteUint32(validUntilLedger)
	w.WriteFixedOpaque(signer.Hash(operationXDR))
	return signer.Hash(w.Bytes()), nil
}
