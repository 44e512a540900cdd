package invoke

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/Code rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	KindCodec     Kind = "Codec"
	KindAddress   Kind = "Address"
	KindAuth      Kind = "Auth"
	KindRestore   Kind = "Restore"
	KindSubmit    Kind = "Submit"
	KindTransport Kind = "Transport"
	KindState     Kind = "State"
)

// Code is a stable identifier naming the violated rule or failed step.
type Code string

const (
	CodeEncode              Code = "encode-failed"
	CodeDecode              Code = "decode-failed"
	CodeBadAddress          Code = "bad-address"
	CodeNeedsMoreSignatures Code = "needs-more-signatures"
	CodeExpiredState        Code = "expired-state"
	CodeRestorationFailure  Code = "restoration-failure"
	CodeSubmissionTimeout   Code = "submission-timeout"
	CodeCannotSign          Code = "cannot-sign"
	CodeBadTransition       Code = "bad-transition"
	CodeTransport           Code = "transport-failed"
)

// Error is the lifecycle's structured error type.
//
// Missing is set for needs-more-signatures errors and names the signer
// addresses still unmet. Keys is set for expired-state and
// restoration-failure errors and carries the archived ledger keys involved.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Missing []string
	Keys    [][]byte
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, code Code, msg string) error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func wrapError(kind Kind, code Code, msg string, cause error) error {
	if cause == nil {
		return newError(kind, code, msg)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsCode reports whether err is (or wraps) a *Error with the given Code.
func IsCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// MissingSigners returns the unmet signer addresses carried by a
// needs-more-signatures error, or nil for any other error.
func MissingSigners(err error) []string {
	var e *Error
	if !errors.As(err, &e) || e.Code != CodeNeedsMoreSignatures {
		return nil
	}
	return e.Missing
}

// ArchivedKeys returns the archived ledger keys carried by an expired-state
// or restoration-failure error, or nil for any other error.
func ArchivedKeys(err error) [][]byte {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}
	switch e.Code {
	case CodeExpiredState, CodeRestorationFailure:
		return e.Keys
	}
	return nil
}
