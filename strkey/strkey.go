// Package strkey implements the checksummed text encoding for account,
// contract and related ledger identifiers.
//
// An encoded key is the unpadded uppercase base-32 form of
// version ‖ payload ‖ CRC16-XModem(version ‖ payload), with the checksum
// appended little-endian. Decoding is strict: any character outside the
// uppercase base-32 alphabet, a text form other than the one Encode emits
// for the decoded bytes, an unknown version, a payload of the wrong size,
// or a checksum disagreement rejects the whole key. Two keys are equal
// iff their decoded (version, payload) pairs are equal; text forms are never
// compared.
package strkey

import (
	"encoding/base32"
	"fmt"
)

// Version tags an identifier kind. The tag occupies the first byte of the
// decoded form and determines the leading character of the text form.
type Version byte

const (
	VersionAccountID        Version = 6 << 3  // 'G'
	VersionSeed             Version = 18 << 3 // 'S'
	VersionMuxedAccount     Version = 12 << 3 // 'M'
	VersionPreAuthTx        Version = 19 << 3 // 'T'
	VersionHashX            Version = 23 << 3 // 'X'
	VersionSignedPayload    Version = 15 << 3 // 'P'
	VersionContract         Version = 2 << 3  // 'C'
	VersionLiquidityPool    Version = 11 << 3 // 'L'
	VersionClaimableBalance Version = 1 << 3  // 'B'
)

// payloadSizes maps each known version to its required payload length.
var payloadSizes = map[Version]int{
	VersionAccountID:        32,
	VersionSeed:             32,
	VersionMuxedAccount:     40,
	VersionPreAuthTx:        32,
	VersionHashX:            32,
	VersionSignedPayload:    40,
	VersionContract:         32,
	VersionLiquidityPool:    32,
	VersionClaimableBalance: 32,
}

func (v Version) String() string {
	switch v {
	case VersionAccountID:
		return "account-id"
	case VersionSeed:
		return "seed"
	case VersionMuxedAccount:
		return "muxed-account"
	case VersionPreAuthTx:
		return "pre-auth-tx"
	case VersionHashX:
		return "hash-x"
	case VersionSignedPayload:
		return "signed-payload"
	case VersionContract:
		return "contract"
	case VersionLiquidityPool:
		return "liquidity-pool"
	case VersionClaimableBalance:
		return "claimable-balance"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(v))
	}
}

// The uppercase RFC 4648 alphabet without padding. Decoding through the
// strict stdlib encoding rejects lowercase and non-alphabet characters,
// which is exactly the contract this format requires.
var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Encode returns the text form of (version, payload).
func Encode(version Version, payload []byte) (string, error) {
	size, ok := payloadSizes[version]
	if !ok {
		return "", fmt.Errorf("%w: 0x%02x", ErrUnknownVersion, byte(version))
	}
	if len(payload) != size {
		return "", fmt.Errorf("%w: %s payload must be %d bytes, got %d",
			ErrInvalidPayloadSize, version, size, len(payload))
	}
	raw := make([]byte, 0, 1+len(payload)+2)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	raw = appendCRC16(raw)
	return encoding.EncodeToString(raw), nil
}

// Decode parses the text form and returns the version and payload.
func Decode(text string) (Version, []byte, error) {
	raw, err := encoding.DecodeString(text)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidAlphabet, err)
	}
	// Unpadded lengths that are not a multiple of 5 bytes leave unused bits
	// in the final character, and the stdlib decoder ignores them. Each key
	// must have exactly one text form, so the round trip must be identity.
	if encoding.EncodeToString(raw) != text {
		return 0, nil, fmt.Errorf("%w: non-canonical encoding", ErrInvalidAlphabet)
	}
	if len(raw) < 3 {
		return 0, nil, fmt.Errorf("%w: %d decoded bytes", ErrInvalidPayloadSize, len(raw))
	}
	version := Version(raw[0])
	size, ok := payloadSizes[version]
	if !ok {
		return 0, nil, fmt.Errorf("%w: 0x%02x", ErrUnknownVersion, raw[0])
	}
	if len(raw) != 1+size+2 {
		return 0, nil, fmt.Errorf("%w: %s expects %d decoded bytes, got %d",
			ErrInvalidPayloadSize, version, 1+size+2, len(raw))
	}
	body, sum := raw[:len(raw)-2], raw[len(raw)-2:]
	want := crc16(body)
	got := uint16(sum[0]) | uint16(sum[1])<<8
	if got != want {
		return 0, nil, ErrChecksumMismatch
	}
	payload := make([]byte, size)
	copy(payload, raw[1:1+size])
	return version, payload, nil
}

// MustEncode is Encode for known-good inputs; it panics on error.
func MustEncode(version Version, payload []byte) string {
	s, err := Encode(version, payload)
	if err != nil {
		panic(err)
	}
	return s
}
