package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProviderConfigured is returned when no credential slot is populated.
	ErrNoProviderConfigured = errors.New("no API key configured")
	// ErrTimeout is returned when a provider call does not complete in time or
	// the transport fails before a response arrives.
	ErrTimeout = errors.New("provider request timed out")
	// ErrMalformedResponse is returned when an LLM reply cannot be decoded into
	// the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed LLM response")

	ErrNoResume = errors.New("no resume parsed yet")
	ErrNoDraft  = errors.New("no pending optimization")
)

// ProviderError carries a non-success HTTP status from an LLM provider along
// with the response body for diagnostics.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
}

// ValidationError reports bad user input. It is always surfaced, never
// replaced by fallback content.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
