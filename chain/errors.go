package chain

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies why a provider attempt failed.
type FailureKind int

const (
	// KindUnknown covers uncategorized faults, including recovered panics.
	KindUnknown FailureKind = iota

	// KindNetwork is a transport-level failure (timeout, DNS, connection
	// reset). The only retryable kind.
	KindNetwork

	// KindNotFound means the provider was reached but has no content for
	// the query. Never retried; the chain moves to the next provider.
	KindNotFound

	// KindParse means a response arrived but the expected structure was
	// missing. Usually the site layout changed.
	KindParse

	// KindAuth means credentials are missing or rejected. The provider is
	// skipped without blocking the rest of the chain.
	KindAuth
)

func (k FailureKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	case KindParse:
		return "parse"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// Retryable reports whether the failure is transient enough to retry.
func (k FailureKind) Retryable() bool {
	return k == KindNetwork
}

// Error is the classified error every provider returns across the chain
// boundary.
type Error struct {
	Provider string
	Kind     FailureKind
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Provider + " [" + e.Kind.String() + "]: " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified provider error.
func NewError(provider string, kind FailureKind, message string, err error) *Error {
	return &Error{
		Provider: provider,
		Kind:     kind,
		Message:  message,
		Err:      err,
	}
}

// KindOf extracts the failure kind from an error chain.
// Anything that is not a *chain.Error classifies as KindUnknown.
func KindOf(err error) FailureKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// ExhaustedError is returned when every provider in a chain failed.
// Its message lists each provider and its failure kind in attempt order.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	b.WriteString("all providers failed")
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %s", a.Provider, a.Kind)
	}
	return b.String()
}
