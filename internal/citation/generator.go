// Package citation dispatches a raw identifier to the source that serves its
// kind and renders the resulting wiki citation template.
package citation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/observability"
	"github.com/helixir/citation-service/internal/sources"
)

// SourceLookup resolves the enabled source for an identifier kind.
// *sources.Registry satisfies it.
type SourceLookup interface {
	Lookup(kind domain.IdentifierKind) (sources.Source, error)
}

// Result is a rendered citation together with the kind it was classified as.
type Result struct {
	Citation string
	Kind     domain.IdentifierKind
	Source   string
}

// Generator turns raw identifiers into rendered citations.
// It holds no per-request state and is safe for concurrent use.
type Generator struct {
	sources SourceLookup
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewGenerator creates a Generator. metrics may be nil.
func NewGenerator(lookup SourceLookup, logger zerolog.Logger, metrics *observability.Metrics) *Generator {
	return &Generator{
		sources: lookup,
		logger:  logger.With().Str("component", "citation_generator").Logger(),
		metrics: metrics,
	}
}

// Generate classifies raw, fetches metadata from the matching source and
// renders the citation. Either a complete citation or an error is returned.
func (g *Generator) Generate(ctx context.Context, raw string) (*Result, error) {
	start := time.Now()
	identifier := strings.TrimSpace(raw)
	kind := domain.Classify(identifier)

	ctx = observability.WithIdentifierKind(ctx, kind.String())
	logger := observability.WithCitationContext(g.logger, observability.RequestIDFromContext(ctx), kind.String())

	g.metrics.RecordCitationRequested(kind.String())

	if kind == domain.KindUnknown {
		err := &domain.UnsupportedIdentifierError{Input: identifier}
		g.recordFailed(kind, err, time.Since(start))
		logger.Info().Str("identifier", identifier).Msg("unsupported identifier")
		return nil, err
	}

	source, err := g.sources.Lookup(kind)
	if err != nil {
		g.recordFailed(kind, err, time.Since(start))
		logger.Warn().Err(err).Msg("no source available")
		return nil, err
	}

	logger = observability.WithSourceContext(logger, source.Name())

	c, err := source.Cite(ctx, identifier)
	if err != nil {
		elapsed := time.Since(start)
		g.recordFailed(kind, err, elapsed)
		logger.Warn().
			Err(err).
			Str("identifier", identifier).
			Str("reason", FailureReason(err)).
			Dur("duration", elapsed).
			Msg("citation failed")
		return nil, err
	}

	result := &Result{
		Citation: c.String(),
		Kind:     kind,
		Source:   source.Name(),
	}

	elapsed := time.Since(start)
	g.metrics.RecordCitationGenerated(kind.String(), elapsed.Seconds())
	logger.Info().
		Str("identifier", identifier).
		Dur("duration", elapsed).
		Msg("citation generated")

	return result, nil
}

func (g *Generator) recordFailed(kind domain.IdentifierKind, err error, elapsed time.Duration) {
	g.metrics.RecordCitationFailed(kind.String(), FailureReason(err), elapsed.Seconds())
}

// FailureReason labels err for metrics and logs.
func FailureReason(err error) string {
	var apiErr *domain.ExternalAPIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrUnsupportedIdentifier):
		return "unsupported_identifier"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &apiErr):
		return "upstream_error"
	default:
		return "internal"
	}
}
