package citation

import (
	"github.com/rs/zerolog"

	"github.com/helixir/citation-service/internal/config"
	"github.com/helixir/citation-service/internal/observability"
	"github.com/helixir/citation-service/internal/sources"
	"github.com/helixir/citation-service/internal/sources/crossref"
	"github.com/helixir/citation-service/internal/sources/googlebooks"
	"github.com/helixir/citation-service/internal/sources/pubmed"
	"github.com/helixir/citation-service/internal/sources/semanticscholar"
	"github.com/helixir/citation-service/internal/sources/webpage"
)

// NewRegistry builds a registry holding every metadata source described by
// cfg. Disabled sources are registered too so lookups report them as
// unavailable rather than unknown. metrics may be nil.
func NewRegistry(cfg config.SourcesConfig, metrics *observability.Metrics, logger zerolog.Logger) *sources.Registry {
	registry := sources.NewRegistry()

	userAgent := func(sc config.SourceConfig) string {
		if sc.UserAgent != "" {
			return sc.UserAgent
		}
		return cfg.UserAgent
	}

	// Crossref.
	registry.Register(crossref.New(crossref.Config{
		BaseURL:   cfg.Crossref.BaseURL,
		Mailto:    cfg.Crossref.Mailto,
		UserAgent: userAgent(cfg.Crossref),
		Timeout:   cfg.Crossref.Timeout,
		RateLimit: cfg.Crossref.RateLimit,
		BurstSize: cfg.Crossref.BurstSize,
		Enabled:   cfg.Crossref.Enabled,
		Metrics:   metrics,
	}))

	// PubMed.
	registry.Register(pubmed.New(pubmed.Config{
		BaseURL:   cfg.PubMed.BaseURL,
		APIKey:    cfg.PubMed.APIKey,
		UserAgent: userAgent(cfg.PubMed),
		Timeout:   cfg.PubMed.Timeout,
		RateLimit: cfg.PubMed.RateLimit,
		BurstSize: cfg.PubMed.BurstSize,
		Enabled:   cfg.PubMed.Enabled,
		Metrics:   metrics,
	}))

	// Google Books.
	registry.Register(googlebooks.New(googlebooks.Config{
		BaseURL:   cfg.GoogleBooks.BaseURL,
		APIKey:    cfg.GoogleBooks.APIKey,
		UserAgent: userAgent(cfg.GoogleBooks),
		Timeout:   cfg.GoogleBooks.Timeout,
		RateLimit: cfg.GoogleBooks.RateLimit,
		BurstSize: cfg.GoogleBooks.BurstSize,
		Enabled:   cfg.GoogleBooks.Enabled,
		Metrics:   metrics,
	}))

	// Semantic Scholar.
	registry.Register(semanticscholar.NewClient(semanticscholar.Config{
		BaseURL:   cfg.SemanticScholar.BaseURL,
		APIKey:    cfg.SemanticScholar.APIKey,
		UserAgent: userAgent(cfg.SemanticScholar),
		Timeout:   cfg.SemanticScholar.Timeout,
		RateLimit: cfg.SemanticScholar.RateLimit,
		BurstSize: cfg.SemanticScholar.BurstSize,
		Enabled:   cfg.SemanticScholar.Enabled,
		Metrics:   metrics,
	}, nil))

	// Generic web pages keep their own browser-like User-Agent default.
	registry.Register(webpage.New(webpage.Config{
		UserAgent: cfg.Web.UserAgent,
		Timeout:   cfg.Web.Timeout,
		RateLimit: cfg.Web.RateLimit,
		BurstSize: cfg.Web.BurstSize,
		Enabled:   cfg.Web.Enabled,
		Metrics:   metrics,
	}))

	for _, src := range registry.AllSources() {
		logger.Info().
			Str("source", src.Name()).
			Bool("enabled", src.IsEnabled()).
			Msg("registered citation source")
	}

	return registry
}
