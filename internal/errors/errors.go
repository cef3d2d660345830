// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so the CLI can tell a rejected login apart from an
// unreachable server without string matching.
//
// The package supports wrapping underlying errors while maintaining error kind information;
// errors.Is and errors.As from the standard library see through E via Unwrap.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Rejected indicates the server answered with a non-2xx status.
	Rejected Kind = "rejected"
	// Transport indicates the request never produced an HTTP response.
	Transport Kind = "transport"
	// Decode indicates a 2xx response whose body could not be parsed.
	Decode Kind = "decode"
	// Storage indicates a failure persisting or clearing local session data.
	Storage Kind = "storage"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
