// Package faults defines the error taxonomy shared by every public operation.
package faults

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the API error envelope.
type Kind string

const (
	// NotFound indicates an unknown type id, pipeline mode, model id or file id
	NotFound Kind = "NotFound"

	// PresetProtected indicates a mutation of a built-in entry beyond disable-only semantics
	PresetProtected Kind = "PresetProtected"

	// InvalidInput indicates a malformed regex, duplicate id, empty required field, etc.
	InvalidInput Kind = "InvalidInput"

	// UpstreamUnavailable indicates a transport error from OCR/NER/VLM/MCP
	UpstreamUnavailable Kind = "UpstreamUnavailable"

	// ParseError indicates model output that could not be coerced into the expected shape
	ParseError Kind = "ParseError"

	// DeadlineExceeded indicates a per-stage timer fired
	DeadlineExceeded Kind = "DeadlineExceeded"

	// Internal is everything else
	Internal Kind = "Internal"
)

// Error carries a Kind alongside the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with a formatted message
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates an underlying error with a kind and message
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the Kind of an error. Context deadline errors map to
// DeadlineExceeded; anything unclassified maps to Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return DeadlineExceeded
	}
	return Internal
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case PresetProtected, InvalidInput:
		return http.StatusBadRequest
	case UpstreamUnavailable:
		return http.StatusBadGateway
	case DeadlineExceeded:
		return http.StatusGatewayTimeout
	case ParseError, Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
