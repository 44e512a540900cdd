package strkey

import "fmt"

// Per-kind helpers for the two identifier kinds the SDK handles directly.
// Other kinds go through Encode/Decode with an explicit Version.

func EncodeAccountID(publicKey []byte) (string, error) {
	return Encode(VersionAccountID, publicKey)
}

func DecodeAccountID(text string) ([]byte, error) {
	return decodeExpecting(VersionAccountID, text)
}

func EncodeSeed(seed []byte) (string, error) {
	return Encode(VersionSeed, seed)
}

func DecodeSeed(text string) ([]byte, error) {
	return decodeExpecting(VersionSeed, text)
}

func EncodeContract(hash []byte) (string, error) {
	return Encode(VersionContract, hash)
}

func DecodeContract(text string) ([]byte, error) {
	return decodeExpecting(VersionContract, text)
}

// IsValidAccountID reports whether text decodes as an account-id key.
func IsValidAccountID(text string) bool {
	_, err := DecodeAccountID(text)
	return err == nil
}

// IsValidSeed reports whether text decodes as a seed key.
func IsValidSeed(text string) bool {
	_, err := DecodeSeed(text)
	return err == nil
}

func decodeExpecting(want Version, text string) ([]byte, error) {
	version, payload, err := Decode(text)
	if err != nil {
		return nil, err
	}
	if version != want {
		return nil, fmt.Errorf("%w: got %s key, want %s", ErrUnknownVersion, version, want)
	}
	return payload, nil
}
