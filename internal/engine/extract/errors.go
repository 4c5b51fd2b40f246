package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes extraction failures.
type Kind string

const (
	KindConfiguration        Kind = "configuration"
	KindProviderUnreachable  Kind = "provider_unreachable"
	KindProviderError        Kind = "provider_error"
	KindMalformedPayload     Kind = "malformed_payload"
	KindMissingExpectedField Kind = "missing_expected_field"
)

// ErrMissingAPIKey is returned before any network call when no provider credential is configured.
var ErrMissingAPIKey = &Error{
	Kind:    KindConfiguration,
	Message: "missing extraction provider API key (set FIRECRAWL_API_KEY)",
}

// Error is the failure side of an extraction: every client error is an *Error.
type Error struct {
	Kind       Kind
	URL        string // target URL the extraction was issued for
	StatusCode int    // provider HTTP status, 0 when no response was received
	Body       string // provider error body (truncated)
	Field      string // schema field for MissingExpectedField / MalformedPayload
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.URL != "" {
		b.WriteString(" for ")
		b.WriteString(e.URL)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(e.Body)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether a second attempt could plausibly succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindProviderUnreachable:
		return true
	case KindProviderError:
		return isRetryableStatus(e.StatusCode)
	default:
		return false
	}
}

// UserMessage returns a short message suitable for API consumers.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindConfiguration:
		return "Extraction service is not configured."
	case KindProviderUnreachable:
		return fmt.Sprintf("Extraction provider could not be reached for %s. Please try again.", e.URL)
	case KindProviderError:
		return fmt.Sprintf("Extraction provider returned status %d for %s.", e.StatusCode, e.URL)
	case KindMalformedPayload:
		if e.StatusCode == 0 && e.Body == "" && e.Field == "" {
			return fmt.Sprintf("Invalid extraction request: %s", e.Message)
		}
		return fmt.Sprintf("Extraction provider returned an unreadable response for %s.", e.URL)
	case KindMissingExpectedField:
		return fmt.Sprintf("Extraction provider response for %s is missing %q.", e.URL, e.Field)
	default:
		return e.Error()
	}
}

// KindOf returns the Kind of err, or "" when err is not an extraction error.
func KindOf(err error) Kind {
	var xe *Error
	if errors.As(err, &xe) {
		return xe.Kind
	}
	return ""
}

func isRetryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

func malformed(target, field, msg string, cause error) *Error {
	return &Error{Kind: KindMalformedPayload, URL: target, Field: field, Message: msg, Err: cause}
}

func missingField(target, field string) *Error {
	return &Error{Kind: KindMissingExpectedField, URL: target, Field: field}
}
