package xdr

import "errors"

var (
	// ErrTruncated reports a read past the end of the buffer.
	ErrTruncated = errors.New("xdr: truncated input")

	// ErrMalformedLength reports a declared length that is negative or
	// exceeds the remaining buffer.
	ErrMalformedLength = errors.New("xdr: malformed length")

	// ErrLengthMismatch reports a fixed-length value whose size disagrees
	// with the declared length.
	ErrLengthMismatch = errors.New("xdr: length mismatch")

	// ErrOversize reports a variable-length value too large to carry a
	// 4-byte length prefix.
	ErrOversize = errors.New("xdr: value exceeds maximum encodable length")
)

func IsTruncated(err error) bool { return errors.Is(err, ErrTruncated) }
