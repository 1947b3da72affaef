// Package providers holds what the insurance and challan upstream clients
// share: the normalized failure taxonomy, a JSON-over-HTTP adapter and the
// latency simulation used by the mock fetchers.
package providers

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for upstream errors. Every
// fetcher classifies its failures into one of these so the service layer can
// translate them without inspecting messages.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"
	ErrorBadData        ErrorCategory = "bad_data"
	ErrorAuthentication ErrorCategory = "authentication"
	ErrorProviderOutage ErrorCategory = "provider_outage"
	ErrorNotFound       ErrorCategory = "not_found"
	ErrorRateLimited    ErrorCategory = "rate_limited"
	// ErrorRejected is a well-formed refusal of a write, such as a declined
	// payment or a policy that is not yet renewable.
	ErrorRejected ErrorCategory = "rejected"
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps an upstream failure with its category.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	Underlying error
	// Retryable marks transient categories. Nothing retries automatically;
	// it only tells the client whether offering "try again" makes sense.
	Retryable bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError sets Retryable for timeout, outage and rate limiting.
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// GetCategory returns ErrorInternal for errors that are not ProviderErrors.
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// ErrCircuitOpen is wrapped by outage errors returned without calling the
// upstream because its circuit breaker is open.
var ErrCircuitOpen = errors.New("upstream circuit open")
