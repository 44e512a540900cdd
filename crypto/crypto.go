// Package crypto defines the cryptographic capability consumed by the SDK.
//
// The SDK performs no cryptographic math itself; everything that signs,
// verifies or hashes goes through a Signer injected at construction time.
// The default implementation lives in crypto/circlsig.
package crypto

// Key and signature sizes. Every Signer argument of one of these kinds must
// be exactly the stated length; anything else fails with ErrSize.
const (
	PrivateKeySize = 32
	PublicKeySize  = 32
	SignatureSize  = 64
	DigestSize     = 32
)

// Signer is the ed25519 capability interface.
//
// Contract:
// - GeneratePrivateKey returns a fresh 32-byte private key.
// - DerivePublicKey is deterministic for a given private key.
// - Sign produces a 64-byte signature over message.
// - Verify reports signature validity; it errors only on malformed sizes.
// - Hash returns a 32-byte digest; it never fails.
type Signer interface {
	GeneratePrivateKey() ([]byte, error)
	DerivePublicKey(privateKey []byte) ([]byte, error)
	Sign(message, privateKey []byte) ([]byte, error)
	Verify(message, signature, publicKey []byte) (bool, error)
	Hash(message []byte) []byte
}
