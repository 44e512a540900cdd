package keystore

import (
	"crypto/sha256"
	"fmt"

	"lumenlab.io/lumen/crypto"
)

// DeriveAccountSeed deterministically derives a labeled account seed from a
// root seed. This mirrors the CLI derivation for compatibility.
func DeriveAccountSeed(rootSeed []byte, label string) ([]byte, error) {
	if err := crypto.CheckSize("root seed", rootSeed, crypto.PrivateKeySize); err != nil {
		return nil, err
	}
	if err := CheckLabel(label); err != nil {
		return nil, err
	}

	h := sha256.New()
	_, _ = h.Write(rootSeed)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("lumen-keystore-v1"))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("account:"))
	_, _ = h.Write([]byte(label))
	sum := h.Sum(nil)

	out := make([]byte, crypto.PrivateKeySize)
	copy(out, sum[:crypto.PrivateKeySize])
	return out, nil
}

// CheckName validates a store entry name.
func CheckName(name string) error {
	return checkIdent("name", name)
}

// CheckLabel validates a derived-account label.
func CheckLabel(label string) error {
	return checkIdent("label", label)
}

func checkIdent(what, s string) error {
	if s == "" {
		return fmt.Errorf("keystore: %s cannot be empty", what)
	}
	for _, char := range s {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("keystore: invalid character %q in %s", char, what)
	}
	return nil
}
