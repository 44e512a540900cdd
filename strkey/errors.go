package strkey

import "errors"

var (
	// ErrInvalidAlphabet reports a character outside the uppercase base-32
	// alphabet in the text form.
	ErrInvalidAlphabet = errors.New("strkey: invalid base-32 alphabet")

	// ErrUnknownVersion reports a version byte with no known identifier kind.
	ErrUnknownVersion = errors.New("strkey: unknown version")

	// ErrInvalidPayloadSize reports a decoded length that matches no known
	// (version, payload-length) combination.
	ErrInvalidPayloadSize = errors.New("strkey: invalid payload size")

	// ErrChecksumMismatch reports a trailing checksum that disagrees with
	// the recomputed CRC over version ‖ payload.
	ErrChecksumMismatch = errors.New("strkey: checksum mismatch")
)
