package crypto

import (
	"errors"
	"fmt"
)

// ErrSize reports a key or signature argument of the wrong length.
var ErrSize = errors.New("crypto: size mismatch")

// CheckSize returns an ErrSize error naming what when len(b) != want.
func CheckSize(what string, b []byte, want int) error {
	if len(b) != want {
		return fmt.Errorf("%w: %s must be %d bytes, got %d", ErrSize, what, want, len(b))
	}
	return nil
}
