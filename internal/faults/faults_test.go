package faults

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"direct", New(NotFound, "missing"), NotFound},
		{"wrapped", fmt.Errorf("outer: %w", New(InvalidInput, "bad")), InvalidInput},
		{"wrap constructor", Wrap(UpstreamUnavailable, errors.New("refused"), "cannot reach"), UpstreamUnavailable},
		{"context deadline", context.DeadlineExceeded, DeadlineExceeded},
		{"unclassified", errors.New("boom"), Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("refused")
	err := Wrap(UpstreamUnavailable, inner, "cannot reach OCR")

	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to match errors.Is")
	}
	if err.Error() == "" || err.Error() == inner.Error() {
		t.Errorf("expected message to include context, got %q", err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{NotFound, http.StatusNotFound},
		{PresetProtected, http.StatusBadRequest},
		{InvalidInput, http.StatusBadRequest},
		{UpstreamUnavailable, http.StatusBadGateway},
		{ParseError, http.StatusInternalServerError},
		{DeadlineExceeded, http.StatusGatewayTimeout},
		{Internal, http.StatusInternalServerError},
		{Kind("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.kind); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
