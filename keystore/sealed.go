package keystore

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// Sealed seed file format: a marker line followed by base64 fields, one per
// line. Plain files carry the strkey seed text directly, so the marker also
// distinguishes the two at load time.
const sealedMarker = "lumen-sealed-seed-v1"

// ErrPassphrase reports a wrong or missing passphrase for a sealed file.
var ErrPassphrase = errors.New("keystore: wrong or missing passphrase")

const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

func sealSeed(plaintext []byte, passphrase string) ([]byte, error) {
	var salt [16]byte
	var nonce [24]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	key, err := sealKey(passphrase, salt[:])
	if err != nil {
		return nil, err
	}
	box := secretbox.Seal(nil, plaintext, &nonce, key)

	var sb strings.Builder
	sb.WriteString(sealedMarker)
	sb.WriteString("\n")
	sb.WriteString(base64.StdEncoding.EncodeToString(salt[:]))
	sb.WriteString("\n")
	sb.WriteString(base64.StdEncoding.EncodeToString(nonce[:]))
	sb.WriteString("\n")
	sb.WriteString(base64.StdEncoding.EncodeToString(box))
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

func openSealed(data []byte, passphrase string) ([]byte, error) {
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 || lines[0] != sealedMarker {
		return nil, fmt.Errorf("keystore: malformed sealed seed file")
	}
	salt, err := base64.StdEncoding.DecodeString(lines[1])
	if err != nil || len(salt) != 16 {
		return nil, fmt.Errorf("keystore: malformed sealed seed salt")
	}
	nonceBytes, err := base64.StdEncoding.DecodeString(lines[2])
	if err != nil || len(nonceBytes) != 24 {
		return nil, fmt.Errorf("keystore: malformed sealed seed nonce")
	}
	box, err := base64.StdEncoding.DecodeString(lines[3])
	if err != nil {
		return nil, fmt.Errorf("keystore: malformed sealed seed payload")
	}
	key, err := sealKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	var nonce [24]byte
	copy(nonce[:], nonceBytes)
	plaintext, ok := secretbox.Open(nil, box, &nonce, key)
	if !ok {
		return nil, ErrPassphrase
	}
	return plaintext, nil
}

func isSealed(data []byte) bool {
	return strings.HasPrefix(string(data), sealedMarker+"\n")
}

func sealKey(passphrase string, salt []byte) (*[32]byte, error) {
	raw, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, err
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}
