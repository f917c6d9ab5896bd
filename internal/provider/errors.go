// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"errors"
	"fmt"
)

// Kind is a resolution failure category. Kinds are sentinels and match
// through errors.Is on any *Error carrying them.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

var (
	// ErrExtraction means the URL does not have the shape the provider
	// needs (e.g. no identifier after the host). Not retryable.
	ErrExtraction Kind = kind{"identifier extraction failed"}

	// ErrLookup means the external lookup returned nothing or failed in
	// transport.
	ErrLookup Kind = kind{"lookup failed"}

	// ErrProbe means the filename probe got a non-success status or a
	// transport error.
	ErrProbe Kind = kind{"metadata probe failed"}

	// ErrUnsupportedURL means no strategy can handle the URL.
	ErrUnsupportedURL Kind = kind{"unsupported url"}
)

// Error is a resolution failure. It carries the kind, the provider that
// failed, an optional message and an optional cause.
type Error struct {
	kind     Kind
	Provider string
	URL      string
	msg      string
	err      error
}

func newError(k Kind, provider, url string, cause error, msgFmt string, args ...any) *Error {
	return &Error{
		kind:     k,
		Provider: provider,
		URL:      url,
		msg:      fmt.Sprintf(msgFmt, args...),
		err:      cause,
	}
}

// Error formats as "<provider>: <kind>: <msg>: <cause>", omitting empty parts.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.kind.Error()
	if e.Provider != "" {
		s = e.Provider + ": " + s
	}
	if e.msg != "" {
		s += ": " + e.msg
	}
	if e.err != nil {
		s += ": " + e.err.Error()
	}
	return s
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.err }

// Is matches either the kind sentinel or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	return e.err != nil && errors.Is(e.err, target)
}

// Kind returns the failure category.
func (e *Error) Kind() Kind { return e.kind }

// IsRetryable reports whether err is a lookup or probe failure, which a
// caller may retry at its own discretion. The engine never retries.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLookup) || errors.Is(err, ErrProbe)
}
