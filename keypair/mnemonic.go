package keypair

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"lumenlab.io/lumen/crypto"
)

// ErrInvalidMnemonic reports a phrase that fails BIP-39 validation.
var ErrInvalidMnemonic = errors.New("keypair: invalid mnemonic phrase")

// NewMnemonic returns a fresh 24-word BIP-39 phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// FromMnemonic derives the index-th signing KeyPair from a BIP-39 phrase and
// optional passphrase. Derivation is deterministic: the same phrase,
// passphrase and index always yield the same pair.
func FromMnemonic(signer crypto.Signer, phrase, passphrase string, index uint32) (*KeyPair, error) {
	if !bip39.IsMnemonicValid(phrase) {
		return nil, ErrInvalidMnemonic
	}
	root := bip39.NewSeed(phrase, passphrase)
	return FromRawSeed(signer, deriveAccountSeed(root, index))
}

// deriveAccountSeed condenses a 64-byte BIP-39 root into the 32-byte seed for
// one account, domain-separated by a fixed label and the account index.
func deriveAccountSeed(root []byte, index uint32) []byte {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)

	h := sha256.New()
	_, _ = h.Write(root)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("lumen-keypair-v1"))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("account:"))
	_, _ = h.Write(idx[:])
	sum := h.Sum(nil)
	return sum[:crypto.PrivateKeySize]
}

// AccountAddressFromMnemonic is a convenience wrapper returning only the
// derived address text.
func AccountAddressFromMnemonic(signer crypto.Signer, phrase, passphrase string, index uint32) (string, error) {
	kp, err := FromMnemonic(signer, phrase, passphrase, index)
	if err != nil {
		return "", fmt.Errorf("derive account %d: %w", index, err)
	}
	return kp.Address(), nil
}
