package semanticscholar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/observability"
	"github.com/helixir/citation-service/internal/sources"
)

const (
	// DefaultBaseURL is the default base URL for the Semantic Scholar Graph API.
	DefaultBaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultRateLimit is the default rate limit for unauthenticated requests.
	// With an API key, this can be increased.
	DefaultRateLimit = 1.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 5

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// NotFoundMessage is returned when the Graph API has no paper for an S2CID.
	NotFoundMessage = "S2CID not found"

	// apiKeyHeader is the header name for the Semantic Scholar API key.
	apiKeyHeader = "x-api-key"

	// paperFields is the list of fields to request from the API.
	paperFields = "title,authors,year,venue,externalIds"

	sourceID   = "semantic_scholar"
	sourceName = "Semantic Scholar"
)

// Config contains configuration options for the Semantic Scholar client.
type Config struct {
	// BaseURL is the base URL for the API.
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// APIKey is the optional API key for authenticated requests.
	// Authenticated requests have higher rate limits.
	APIKey string

	UserAgent string

	// Timeout is the HTTP request timeout.
	// Defaults to DefaultTimeout if zero.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	// Defaults to DefaultRateLimit if zero.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	// Defaults to DefaultBurstSize if zero.
	BurstSize int

	// Enabled indicates whether this source is enabled.
	Enabled bool

	Metrics *observability.Metrics
}

// Client implements the sources.Source interface for Semantic Scholar.
type Client struct {
	httpClient *sources.HTTPClient
	config     Config
}

// Compile-time check that Client implements sources.Source.
var _ sources.Source = (*Client)(nil)

// NewClient creates a new Semantic Scholar client with the given configuration.
// If httpClient is nil, a new one will be created with the configuration settings.
func NewClient(cfg Config, httpClient *sources.HTTPClient) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = DefaultBurstSize
	}

	if httpClient == nil {
		httpClient = sources.NewHTTPClient(sources.HTTPClientConfig{
			Source:       sourceID,
			Timeout:      cfg.Timeout,
			RateLimit:    cfg.RateLimit,
			BurstSize:    cfg.BurstSize,
			UserAgent:    cfg.UserAgent,
			APIKey:       cfg.APIKey,
			APIKeyHeader: apiKeyHeader,
			Metrics:      cfg.Metrics,
		})
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
	}
}

// Cite looks up an S2CID and renders a {{cite journal}} template. The venue
// is used as the journal even for conference papers.
func (c *Client) Cite(ctx context.Context, identifier string) (*domain.Citation, error) {
	id := domain.StripS2CIDPrefix(identifier)

	paper, err := c.GetByS2CID(ctx, id)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(paper.Authors))
	for _, a := range paper.Authors {
		names = append(names, a.Name)
	}

	year := ""
	if paper.Year > 0 {
		year = strconv.Itoa(paper.Year)
	}

	doi := ""
	if paper.ExternalIDs != nil {
		doi = paper.ExternalIDs.DOI
	}

	return domain.NewCitation(domain.TemplateJournal).
		AddAuthors(names).
		Add("title", paper.Title).
		Add("journal", paper.Venue).
		Add("year", year).
		Add("doi", doi).
		Require("s2cid", id), nil
}

// GetByS2CID retrieves a paper by its Semantic Scholar corpus id.
func (c *Client) GetByS2CID(ctx context.Context, id string) (*PaperResult, error) {
	paperURL := fmt.Sprintf("%s/paper/%s?fields=%s", c.config.BaseURL, url.PathEscape("S2CID:"+id), paperFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, paperURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.NewNotFoundMessage("S2CID", id, NotFoundMessage)
	}
	if err := sources.ErrorFromResponse(sourceName, resp); err != nil {
		return nil, err
	}

	// Read the body first so an empty or null payload reads as not found.
	body, err := io.ReadAll(io.LimitReader(resp.Body, sources.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, domain.NewNotFoundMessage("S2CID", id, NotFoundMessage)
	}

	var paper PaperResult
	if err := json.Unmarshal(body, &paper); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &paper, nil
}

// Kinds returns the identifier kinds served by Semantic Scholar.
func (c *Client) Kinds() []domain.IdentifierKind {
	return []domain.IdentifierKind{domain.KindS2CID}
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is currently enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}
