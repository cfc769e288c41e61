package citation

import (
	"context"
	"errors"

	"github.com/helixir/citation-service/internal/domain"
)

const (
	// DefaultErrorMessage is reported when a failure carries no usable message.
	DefaultErrorMessage = "Failed to generate citation"

	// TimeoutMessage is reported when an upstream call outlives its deadline.
	TimeoutMessage = "Request to the metadata source timed out"

	// UnavailableMessage is reported when the source for a kind is disabled.
	UnavailableMessage = "No citation source is available for this identifier type"
)

// UserMessage returns the most specific human-readable message for err.
// An upstream API's own error payload wins over the local error text, which
// wins over DefaultErrorMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *domain.ExternalAPIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	var unsupported *domain.UnsupportedIdentifierError
	if errors.As(err, &unsupported) {
		return unsupported.Error()
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) && validation.Message != "" {
		return validation.Message
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return TimeoutMessage
	case errors.Is(err, domain.ErrSourceUnavailable):
		return UnavailableMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}
