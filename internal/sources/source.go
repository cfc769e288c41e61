// Package sources provides the interface and shared plumbing for citation
// metadata sources.
//
// Each upstream (Crossref, PubMed, Google Books, Semantic Scholar, arbitrary
// web pages) implements the Source interface in its own subpackage. A source
// turns one raw identifier into a populated citation with a single outbound
// GET through a rate-limited HTTPClient.
//
// Example usage:
//
//	src := crossref.New(crossref.Config{Enabled: true})
//	c, err := src.Cite(ctx, "10.1038/s41586-020-2649-2")
//	fmt.Println(c.String())
package sources

import (
	"context"

	"github.com/helixir/citation-service/internal/domain"
)

// Source defines the interface that all metadata sources must implement.
type Source interface {
	// Cite fetches metadata for identifier and returns the populated citation.
	// The identifier is the raw user input; each source applies its own
	// normalization (prefix stripping, URL parsing).
	//
	// Returns a *domain.NotFoundError when the upstream has no record,
	// a *domain.ExternalAPIError for non-2xx responses, and a wrapped
	// context error on cancellation or timeout.
	Cite(ctx context.Context, identifier string) (*domain.Citation, error)

	// Kinds returns the identifier kinds this source serves.
	Kinds() []domain.IdentifierKind

	// Name returns a human-readable name used in logs and error messages.
	Name() string

	// IsEnabled reports whether the source is configured to serve requests.
	IsEnabled() bool
}
