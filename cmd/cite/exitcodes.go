package main

import (
	"context"
	"errors"

	"github.com/helixir/citation-service/internal/domain"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure)
	ExitConfigError = 2 // Configuration could not be loaded
	ExitInputError  = 3 // Unsupported or malformed identifier
	ExitNotFound    = 4 // Upstream has no record for the identifier
	ExitAPIError    = 5 // Upstream API error, rate limit or timeout
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCodeFor maps a citation failure to an exit code.
func exitCodeFor(err error) int {
	var apiErr *domain.ExternalAPIError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, domain.ErrUnsupportedIdentifier), errors.Is(err, domain.ErrInvalidInput):
		return ExitInputError
	case errors.Is(err, domain.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &apiErr):
		return ExitAPIError
	default:
		return ExitError
	}
}
