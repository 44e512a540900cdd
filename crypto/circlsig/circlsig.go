// Package circlsig provides the default crypto.Signer backed by the circl
// ed25519 implementation, with sha-256 digests.
package circlsig

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"

	"lumenlab.io/lumen/crypto"
)

// Signer implements crypto.Signer. The zero value is ready to use.
type Signer struct{}

var _ crypto.Signer = Signer{}

// New returns the default capability implementation.
func New() Signer { return Signer{} }

func (Signer) GeneratePrivateKey() ([]byte, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("circlsig: generate private key: %w", err)
	}
	return seed, nil
}

func (Signer) DerivePublicKey(privateKey []byte) ([]byte, error) {
	if err := crypto.CheckSize("private key", privateKey, crypto.PrivateKeySize); err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(privateKey)
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv.Public().(ed25519.PublicKey))
	return pub, nil
}

func (Signer) Sign(message, privateKey []byte) ([]byte, error) {
	if err := crypto.CheckSize("private key", privateKey, crypto.PrivateKeySize); err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(privateKey)
	return ed25519.Sign(priv, message), nil
}

func (Signer) Verify(message, signature, publicKey []byte) (bool, error) {
	if err := crypto.CheckSize("signature", signature, crypto.SignatureSize); err != nil {
		return false, err
	}
	if err := crypto.CheckSize("public key", publicKey, crypto.PublicKeySize); err != nil {
		return false, err
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature), nil
}

func (Signer) Hash(message []byte) []byte {
	sum := sha256.Sum256(message)
	return sum[:]
}
