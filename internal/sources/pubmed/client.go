package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/observability"
	"github.com/helixir/citation-service/internal/sources"
)

const (
	// DefaultBaseURL is the base URL for NCBI E-utilities API.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultRateLimit is the rate limit without an API key (3 requests/second).
	// With an API key, the limit increases to 10 requests/second.
	DefaultRateLimit = 3.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 3

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// NotFoundMessage is returned when esummary has no record for a PMID.
	NotFoundMessage = "PMID not found"

	sourceID   = "pubmed"
	sourceName = "PubMed"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Config holds the configuration for the PubMed client.
type Config struct {
	// BaseURL is the base URL for the E-utilities API.
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// APIKey is the NCBI API key for higher rate limits.
	// Optional but recommended for production use.
	APIKey string

	UserAgent string

	// Timeout is the request timeout.
	// Defaults to DefaultTimeout if zero.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	// Defaults to DefaultRateLimit (3 req/sec) if zero.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// Enabled indicates whether this source is enabled.
	Enabled bool

	Metrics *observability.Metrics
}

// applyDefaults applies default values to the config.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
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
}

// Client implements the sources.Source interface for PubMed.
type Client struct {
	config     Config
	httpClient *sources.HTTPClient
}

// Compile-time check that Client implements Source.
var _ sources.Source = (*Client)(nil)

// New creates a new PubMed client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	httpCfg := sources.HTTPClientConfig{
		Source:    sourceID,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: cfg.UserAgent,
		Metrics:   cfg.Metrics,
	}

	return &Client{
		config:     cfg,
		httpClient: sources.NewHTTPClient(httpCfg),
	}
}

// NewWithHTTPClient creates a new PubMed client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *sources.HTTPClient) *Client {
	cfg.applyDefaults()
	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Cite looks up a PMID and renders a {{cite journal}} template.
func (c *Client) Cite(ctx context.Context, identifier string) (*domain.Citation, error) {
	pmid := domain.StripPMIDPrefix(identifier)

	summary, err := c.ESummary(ctx, pmid)
	if err != nil {
		return nil, err
	}

	return buildCitation(pmid, summary), nil
}

// ESummary fetches the document summary for a single PMID.
func (c *Client) ESummary(ctx context.Context, pmid string) (*DocumentSummary, error) {
	u, err := url.Parse(c.config.BaseURL + "/esummary.fcgi")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("db", "pubmed")
	q.Set("id", pmid)
	q.Set("retmode", "json")
	if c.config.APIKey != "" {
		q.Set("api_key", c.config.APIKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := sources.ErrorFromResponse(sourceName, resp); err != nil {
		return nil, err
	}

	var envelope ESummaryResponse
	if err := sources.DecodeJSON(resp.Body, &envelope); err != nil {
		return nil, err
	}

	raw, ok := envelope.Result[pmid]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, domain.NewNotFoundMessage("PMID", pmid, NotFoundMessage)
	}

	var summary DocumentSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("decoding summary for %s: %w", pmid, err)
	}
	if summary.Error != "" {
		return nil, domain.NewNotFoundMessage("PMID", pmid, NotFoundMessage)
	}

	return &summary, nil
}

// Kinds returns the identifier kinds served by PubMed.
func (c *Client) Kinds() []domain.IdentifierKind {
	return []domain.IdentifierKind{domain.KindPMID}
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is currently enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// buildCitation renders authors, title, journal, year, volume, issue, pages, doi, pmid.
func buildCitation(pmid string, s *DocumentSummary) *domain.Citation {
	names := make([]string, 0, len(s.Authors))
	for _, a := range s.Authors {
		names = append(names, a.Name)
	}

	return domain.NewCitation(domain.TemplateJournal).
		AddAuthors(names).
		Add("title", s.Title).
		Add("journal", s.Source).
		Add("year", yearPattern.FindString(s.PubDate)).
		Add("volume", s.Volume).
		Add("issue", s.Issue).
		Add("pages", s.Pages).
		Add("doi", extractDOI(s.ELocationID)).
		Require("pmid", pmid)
}

// extractDOI returns the text after "doi: " in an elocationid, or the value as-is.
func extractDOI(elocationID string) string {
	if _, after, found := strings.Cut(elocationID, "doi: "); found {
		return after
	}
	return elocationID
}
