package api

import (
	"fmt"

	"github.com/aunetx/text-translator/language"
)

// TransportError reports that the request could not be sent or no response
// was received. The underlying client error is preserved for unwrapping.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderError reports that the provider answered with a non-success status
// or an in-body error payload. Code carries the provider's own error code
// when the response body had one, otherwise the HTTP status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: provider error %d: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: provider error %d", e.Provider, e.Code)
}

// DecodeError reports a response body that did not match the provider's
// documented schema. A detection response carrying a language code outside
// the adapter's table is a DecodeError, never an "unknown language" result.
type DecodeError struct {
	Provider string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: could not decode response: %v", e.Provider, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedLanguageError reports a requested Language with no code mapping
// for this provider. It is raised before any request is sent.
type UnsupportedLanguageError struct {
	Provider string
	Language language.Language
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("%s: unsupported language: %s", e.Provider, e.Language)
}
