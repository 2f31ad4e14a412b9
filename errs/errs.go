// Package errs defines the error-kind vocabulary of §7: a small closed set
// of typed errors, each caught at a well-defined boundary, never silently
// swallowed.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies one of the error categories from §7.
type Kind string

const (
	KindParse           Kind = "ParseError"
	KindStaticEval      Kind = "StaticEvalError"
	KindLHS             Kind = "LHSError"
	KindRHS             Kind = "RHSError"
	KindFuncResolution  Kind = "FuncResolutionError"
	KindLookup          Kind = "LookupError"
	KindAbortDeadline   Kind = "AbortDeadlineExceeded"
	KindConfig          Kind = "ConfigError"
)

// Error is the single error type used for all eight kinds; Kind lets callers
// use errors.Is/As style dispatch without eight distinct Go types.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is supports errors.Is(err, errs.KindX) style checks when comparing to a
// sentinel created with New(kind, "").
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Sentinel returns a zero-message Error of kind, suitable as an errors.Is
// target: `errors.Is(err, errs.Sentinel(errs.KindStaticEval))`.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}

// IsKind reports whether err is an *Error of the given kind (wraps errors.As).
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
