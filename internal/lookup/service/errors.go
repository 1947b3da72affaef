package service

import (
	"context"
	"errors"

	"motorhub/internal/lookup/metrics"
	"motorhub/internal/lookup/providers"
	dErrors "motorhub/pkg/domain-errors"
)

// Messages are the user-facing texts stored in the slice's error field.
type Messages struct {
	NotFound    string
	Timeout     string
	Unavailable string
	RateLimited string
	Internal    string
}

// DefaultMessages is used for anything a domain does not override.
var DefaultMessages = Messages{
	NotFound:    "no records found for this vehicle",
	Timeout:     "the request timed out, please try again",
	Unavailable: "the service is temporarily unavailable, please try again later",
	RateLimited: "too many requests, please wait a moment and try again",
	Internal:    "something went wrong, please try again",
}

func (m Messages) withDefaults() Messages {
	if m.NotFound == "" {
		m.NotFound = DefaultMessages.NotFound
	}
	if m.Timeout == "" {
		m.Timeout = DefaultMessages.Timeout
	}
	if m.Unavailable == "" {
		m.Unavailable = DefaultMessages.Unavailable
	}
	if m.RateLimited == "" {
		m.RateLimited = DefaultMessages.RateLimited
	}
	if m.Internal == "" {
		m.Internal = DefaultMessages.Internal
	}
	return m
}

// TranslateError converts fetcher failures into domain errors. It is the only
// place provider categories are interpreted; domain errors pass through.
func TranslateError(err error, msgs Messages) error {
	if err == nil {
		return nil
	}
	msgs = msgs.withDefaults()

	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, msgs.Timeout)
	}

	var pe *providers.ProviderError
	if !errors.As(err, &pe) {
		return dErrors.Wrap(err, dErrors.CodeInternal, msgs.Internal)
	}

	switch pe.Category {
	case providers.ErrorNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, msgs.NotFound)
	case providers.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, msgs.Timeout)
	case providers.ErrorProviderOutage, providers.ErrorAuthentication, providers.ErrorBadData:
		// Our credentials or their payloads; the user can only wait.
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msgs.Unavailable)
	case providers.ErrorRateLimited:
		return dErrors.Wrap(err, dErrors.CodeRateLimited, msgs.RateLimited)
	case providers.ErrorRejected:
		return dErrors.Wrap(err, dErrors.CodeConflict, pe.Message)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msgs.Internal)
	}
}

// Outcome maps a translated error to a metrics outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		return metrics.OutcomeNotFound
	case dErrors.HasCode(err, dErrors.CodeConflict):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
