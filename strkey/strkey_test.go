package strkey

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func seqPayload(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestEncode_KnownVectors(t *testing.T) {
	cases := []struct {
		version Version
		payload []byte
		want    string
	}{
		{VersionAccountID, make([]byte, 32), "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"},
		{VersionSeed, seqPayload(32), "SAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB6NKI"},
		{VersionContract, seqPayload(32), "CAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB6N4O"},
		{VersionMuxedAccount, seqPayload(40), "MAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB6IBBEIRSIJJGE7KQE"},
		{VersionSignedPayload, seqPayload(40), "PAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB6IBBEIRSIJJGE4N2U"},
		{VersionPreAuthTx, seqPayload(32), "TAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB6ULG"},
		{VersionHashX, seqPayload(32), "XAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7QO7"},
		{VersionLiquidityPool, seqPayload(32), "LAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB6UWD"},
		{VersionClaimableBalance, seqPayload(32), "BAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7G74"},
	}
	for _, tc := range cases {
		got, err := Encode(tc.version, tc.payload)
		if err != nil {
			t.Fatalf("Encode(%s): %v", tc.version, err)
		}
		if got != tc.want {
			t.Fatalf("Encode(%s): got %s want %s", tc.version, got, tc.want)
		}
	}
}

func TestRoundTrip_AllVersions(t *testing.T) {
	for version, size := range payloadSizes {
		payload := seqPayload(size)
		text, err := Encode(version, payload)
		if err != nil {
			t.Fatalf("Encode(%s): %v", version, err)
		}
		gotVersion, gotPayload, err := Decode(text)
		if err != nil {
			t.Fatalf("Decode(%s): %v", version, err)
		}
		if gotVersion != version || !bytes.Equal(gotPayload, payload) {
			t.Fatalf("round trip mismatch for %s", version)
		}
	}
}

func TestDecode_RejectsSingleCharacterFlips(t *testing.T) {
	for version, size := range payloadSizes {
		text := MustEncode(version, seqPayload(size))
		for i := 0; i < len(text); i++ {
			for _, c := range []byte{'A', '7', 'a', '0'} {
				if text[i] == c {
					continue
				}
				mutated := text[:i] + string(c) + text[i+1:]
				_, _, err := Decode(mutated)
				if err == nil {
					t.Fatalf("%s: flip at %d to %q accepted", version, i, c)
				}
				if !errors.Is(err, ErrChecksumMismatch) &&
					!errors.Is(err, ErrInvalidAlphabet) &&
					!errors.Is(err, ErrUnknownVersion) &&
					!errors.Is(err, ErrInvalidPayloadSize) {
					t.Fatalf("%s: flip at %d to %q: unexpected error %v", version, i, c, err)
				}
			}
		}
	}
}

// The 40-byte kinds encode to 69 characters, leaving one unused bit in the
// final character. A text differing only in that bit decodes to the same
// bytes, so only the canonical-form check can reject it.
func TestDecode_RejectsNonCanonicalTrailingBits(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	for _, version := range []Version{VersionMuxedAccount, VersionSignedPayload} {
		text := MustEncode(version, seqPayload(40))
		last := text[len(text)-1]
		idx := strings.IndexByte(alphabet, last)
		if idx < 0 {
			t.Fatalf("%s: final character %q outside alphabet", version, last)
		}
		mutated := text[:len(text)-1] + string(alphabet[idx^1])
		_, _, err := Decode(mutated)
		if !errors.Is(err, ErrInvalidAlphabet) {
			t.Fatalf("%s: expected ErrInvalidAlphabet for trailing-bit flip, got %v", version, err)
		}
	}
}

func TestDecode_RejectsLowercase(t *testing.T) {
	text := MustEncode(VersionAccountID, seqPayload(32))
	_, _, err := Decode(strings.ToLower(text))
	if !errors.Is(err, ErrInvalidAlphabet) {
		t.Fatalf("expected ErrInvalidAlphabet, got %v", err)
	}
}

func TestDecode_RejectsUnknownVersion(t *testing.T) {
	// 0xFF is no registered version tag.
	raw := append([]byte{0xFF}, seqPayload(32)...)
	raw = appendCRC16(raw)
	_, _, err := Decode(encoding.EncodeToString(raw))
	if !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}
}

func TestDecode_RejectsWrongPayloadSize(t *testing.T) {
	raw := append([]byte{byte(VersionAccountID)}, seqPayload(16)...)
	raw = appendCRC16(raw)
	_, _, err := Decode(encoding.EncodeToString(raw))
	if !errors.Is(err, ErrInvalidPayloadSize) {
		t.Fatalf("expected ErrInvalidPayloadSize, got %v", err)
	}
}

func TestDecode_RejectsBadChecksum(t *testing.T) {
	raw := append([]byte{byte(VersionAccountID)}, seqPayload(32)...)
	raw = appendCRC16(raw)
	raw[len(raw)-1] ^= 0x01
	_, _, err := Decode(encoding.EncodeToString(raw))
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestEncode_RejectsWrongPayloadSize(t *testing.T) {
	if _, err := Encode(VersionSeed, seqPayload(31)); !errors.Is(err, ErrInvalidPayloadSize) {
		t.Fatalf("expected ErrInvalidPayloadSize, got %v", err)
	}
	if _, err := Encode(Version(0xFF), seqPayload(32)); !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}
}

func TestPerKindHelpers(t *testing.T) {
	pub := seqPayload(32)
	text, err := EncodeAccountID(pub)
	if err != nil {
		t.Fatalf("EncodeAccountID: %v", err)
	}
	got, err := DecodeAccountID(text)
	if err != nil || !bytes.Equal(got, pub) {
		t.Fatalf("DecodeAccountID: %v", err)
	}
	if !IsValidAccountID(text) {
		t.Fatalf("IsValidAccountID rejected a valid key")
	}
	if IsValidSeed(text) {
		t.Fatalf("IsValidSeed accepted an account-id key")
	}
	seedText := MustEncode(VersionSeed, pub)
	if _, err := DecodeAccountID(seedText); err == nil {
		t.Fatalf("DecodeAccountID accepted a seed key")
	}
}
