// Package apierr defines the error taxonomy shared across the extraction
// pipeline (spec.md §7): a closed set of Kind values and a uniform CLIError
// payload usable for both human and JSON output.
package apierr

import (
	"encoding/json"
	"errors"
)

// Kind enumerates the error taxonomy independent of transport.
type Kind string

const (
	// KindUnavailable means the per-language extractor could not be started at all.
	KindUnavailable Kind = "UNAVAILABLE"
	// KindSourceError means parsing a specific source file failed; callers should
	// prefer reporting this as a diagnostic rather than raising it.
	KindSourceError Kind = "SOURCE_ERROR"
	// KindTimeout means the extractor subprocess exceeded its deadline.
	KindTimeout Kind = "TIMEOUT"
	// KindOutputTruncation means captured stdout/stderr was truncated.
	KindOutputTruncation Kind = "OUTPUT_TRUNCATION"
	// KindDeserialization means the raw analyzer JSON was malformed or mis-shaped.
	KindDeserialization Kind = "DESERIALIZATION"
	// KindCancelled means the caller's context was cancelled; never downgraded
	// to a success-with-failure result.
	KindCancelled Kind = "CANCELLED"
)

// Error is the uniform error payload for the extraction pipeline. Printed
// with %s it returns Message, followed by ": " and Detail when Detail is
// set; JSON() returns the full structured payload.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Wrap builds an *Error of the given kind, naming the failing subsystem in
// msg and carrying inner's message as Detail.
func Wrap(kind Kind, msg string, inner error) *Error {
	detail := ""
	if inner != nil {
		detail = inner.Error()
	}
	return &Error{Kind: kind, Message: msg, Detail: detail}
}

// New builds an *Error of the given kind with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Is reports whether err is an *Error of the given kind, unwrapping once.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		e, ok = errors.Unwrap(err).(*Error)
	}
	return ok && e.Kind == kind
}
