// Package keypair provides the account key abstraction used to sign and
// verify envelopes and authorization entries.
//
// A KeyPair always holds a 32-byte public key. It optionally holds the
// 32-byte seed it was derived from; CanSign reports whether it does. KeyPairs
// are caller-held values and are never shared implicitly.
package keypair

import (
	"bytes"
	"errors"
	"fmt"

	"lumenlab.io/lumen/crypto"
	"lumenlab.io/lumen/strkey"
)

// ErrCannotSign reports a signing attempt on a verify-only KeyPair.
var ErrCannotSign = errors.New("keypair: no private key held")

type KeyPair struct {
	pub    []byte
	seed   []byte // nil for verify-only pairs
	signer crypto.Signer
}

// Random returns a KeyPair with a freshly generated seed.
func Random(signer crypto.Signer) (*KeyPair, error) {
	seed, err := signer.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return FromRawSeed(signer, seed)
}

// FromRawSeed builds a signing KeyPair from a 32-byte seed.
func FromRawSeed(signer crypto.Signer, seed []byte) (*KeyPair, error) {
	if err := crypto.CheckSize("seed", seed, crypto.PrivateKeySize); err != nil {
		return nil, err
	}
	pub, err := signer.DerivePublicKey(seed)
	if err != nil {
		return nil, err
	}
	return &KeyPair{pub: pub, seed: append([]byte(nil), seed...), signer: signer}, nil
}

// FromSecretSeed builds a signing KeyPair from a strkey seed ("S...").
func FromSecretSeed(signer crypto.Signer, text string) (*KeyPair, error) {
	seed, err := strkey.DecodeSeed(text)
	if err != nil {
		return nil, err
	}
	return FromRawSeed(signer, seed)
}

// FromAccountID builds a verify-only KeyPair from a strkey account id ("G...").
func FromAccountID(signer crypto.Signer, text string) (*KeyPair, error) {
	pub, err := strkey.DecodeAccountID(text)
	if err != nil {
		return nil, err
	}
	return FromPublicKey(signer, pub)
}

// FromPublicKey builds a verify-only KeyPair from a raw 32-byte public key.
func FromPublicKey(signer crypto.Signer, pub []byte) (*KeyPair, error) {
	if err := crypto.CheckSize("public key", pub, crypto.PublicKeySize); err != nil {
		return nil, err
	}
	return &KeyPair{pub: append([]byte(nil), pub...), signer: signer}, nil
}

// CanSign reports whether the pair holds a private key.
func (kp *KeyPair) CanSign() bool { return kp.seed != nil }

// PublicKey returns a copy of the raw public key.
func (kp *KeyPair) PublicKey() []byte {
	return append([]byte(nil), kp.pub...)
}

// Address returns the strkey account id.
func (kp *KeyPair) Address() string {
	return strkey.MustEncode(strkey.VersionAccountID, kp.pub)
}

// SecretSeed returns the strkey seed, or "" for verify-only pairs.
func (kp *KeyPair) SecretSeed() string {
	if !kp.CanSign() {
		return ""
	}
	return strkey.MustEncode(strkey.VersionSeed, kp.seed)
}

// Hint returns the trailing four public-key bytes used to tag signatures.
func (kp *KeyPair) Hint() [4]byte {
	var h [4]byte
	copy(h[:], kp.pub[len(kp.pub)-4:])
	return h
}

// Sign signs message with the held seed.
func (kp *KeyPair) Sign(message []byte) ([]byte, error) {
	if !kp.CanSign() {
		return nil, fmt.Errorf("%w: %s", ErrCannotSign, kp.Address())
	}
	return kp.signer.Sign(message, kp.seed)
}

// Verify reports whether signature is valid for message under this key.
func (kp *KeyPair) Verify(message, signature []byte) (bool, error) {
	return kp.signer.Verify(message, signature, kp.pub)
}

// Equal reports public-key equality; seeds and text forms are not compared.
func (kp *KeyPair) Equal(other *KeyPair) bool {
	if kp == nil || other == nil {
		return kp == other
	}
	return bytes.Equal(kp.pub, other.pub)
}
