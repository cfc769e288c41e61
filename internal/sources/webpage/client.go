// Package webpage provides a citation source for arbitrary web pages.
//
// The page is fetched once and its HTML metadata (Open Graph, article and
// author meta tags, <time> elements) is scraped with goquery into a
// {{cite web}} template.
package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/observability"
	"github.com/helixir/citation-service/internal/sources"
)

const (
	// DefaultUserAgent identifies the crawler to site operators.
	DefaultUserAgent = "Mozilla/5.0 (compatible; CitationBot/1.0; +https://helixir.io/bot)"

	// DefaultTimeout bounds the whole fetch, including the body read.
	DefaultTimeout = 10 * time.Second

	DefaultRateLimit = 20.0
	DefaultBurstSize = 20

	// SourceName labels errors raised for web fetches.
	SourceName = "web"

	accessDateLayout = "2006-01-02"
)

// Config contains configuration options for the web page client.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	RateLimit float64
	BurstSize int
	Enabled   bool
	Metrics   *observability.Metrics

	// Now supplies the access date. Defaults to time.Now.
	Now func() time.Time
}

func (c *Config) applyDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Client implements sources.Source for generic http(s) URLs.
type Client struct {
	config     Config
	httpClient *sources.HTTPClient
}

var _ sources.Source = (*Client)(nil)

// New creates a web page client.
func New(cfg Config) *Client {
	cfg.applyDefaults()
	return &Client{
		config: cfg,
		httpClient: sources.NewHTTPClient(sources.HTTPClientConfig{
			Source:    SourceName,
			Timeout:   cfg.Timeout,
			RateLimit: cfg.RateLimit,
			BurstSize: cfg.BurstSize,
			UserAgent: cfg.UserAgent,
			Metrics:   cfg.Metrics,
		}),
	}
}

// Cite fetches the page at identifier and renders a {{cite web}} template.
func (c *Client) Cite(ctx context.Context, identifier string) (*domain.Citation, error) {
	pageURL := strings.TrimSpace(identifier)

	doc, err := c.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	meta := Extract(doc, pageURL)

	return domain.NewCitation(domain.TemplateWeb).
		Add("author", meta.Author).
		Require("title", meta.Title).
		Add("website", meta.SiteName).
		Require("url", meta.URL).
		Add("date", meta.Date).
		Require("access-date", c.config.Now().UTC().Format(accessDateLayout)), nil
}

func (c *Client) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, domain.NewValidationError("identifier", fmt.Sprintf("invalid URL: %v", err))
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if err := sources.ErrorFromResponse(SourceName, resp); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, sources.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", sources.NormalizeTimeout(err))
	}
	return doc, nil
}

// Kinds returns the identifier kinds served by the web client.
func (c *Client) Kinds() []domain.IdentifierKind {
	return []domain.IdentifierKind{domain.KindWebURL}
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return SourceName
}

// IsEnabled returns whether this source is currently enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}
