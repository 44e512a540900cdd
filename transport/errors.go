package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestTimeout reports a request that did not complete in time.
	ErrRequestTimeout = errors.New("transport: request timeout")

	// ErrTooManyRequests reports endpoint rate limiting. Callers decide
	// their own backoff; the SDK never retries on its own.
	ErrTooManyRequests = errors.New("transport: too many requests")

	// ErrNotFound reports an unknown transaction hash.
	ErrNotFound = errors.New("transport: transaction not found")

	// ErrHashMismatch reports endpoints disagreeing about a submitted
	// transaction's hash.
	ErrHashMismatch = errors.New("transport: transaction hash mismatch")
)

// RPCError carries endpoint diagnostics alongside a classified cause.
//
// StatusCode is the HTTP-like status when one exists (0 otherwise); Body is
// the raw response body, kept verbatim for diagnostics.
type RPCError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RPCError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v (status %d)", e.Err, e.StatusCode)
	}
	return e.Err.Error()
}

func (e *RPCError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsTimeout(err error) bool         { return errors.Is(err, ErrRequestTimeout) }
func IsTooManyRequests(err error) bool { return errors.Is(err, ErrTooManyRequests) }

// IsUnavailable reports errors worth falling back on: the endpoint timed
// out, rate limited, answered with a server error, or failed below the
// protocol entirely.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if IsTimeout(err) || IsTooManyRequests(err) {
		return true
	}
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr.StatusCode == 0 || rpcErr.StatusCode >= 500
	}
	return false
}
