package crossref

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/observability"
	"github.com/helixir/citation-service/internal/sources"
)

const (
	// DefaultBaseURL is the base URL for the Crossref REST API.
	DefaultBaseURL = "https://api.crossref.org"

	// DefaultRateLimit matches the public pool allowance.
	DefaultRateLimit = 50.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 50

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	sourceID   = "crossref"
	sourceName = "Crossref"
)

// Config contains configuration options for the Crossref client.
type Config struct {
	// BaseURL defaults to DefaultBaseURL if empty.
	BaseURL string

	// Mailto is sent as the mailto query parameter to join the polite pool.
	Mailto string

	// UserAgent overrides the shared default User-Agent.
	UserAgent string

	Timeout   time.Duration
	RateLimit float64
	BurstSize int

	// Enabled indicates whether this source serves requests.
	Enabled bool

	// Metrics is optional.
	Metrics *observability.Metrics
}

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

// Client implements sources.Source for DOIs.
type Client struct {
	config     Config
	httpClient *sources.HTTPClient
}

// Compile-time check that Client implements sources.Source.
var _ sources.Source = (*Client)(nil)

// New creates a new Crossref client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	return &Client{
		config: cfg,
		httpClient: sources.NewHTTPClient(sources.HTTPClientConfig{
			Source:    sourceID,
			Timeout:   cfg.Timeout,
			RateLimit: cfg.RateLimit,
			BurstSize: cfg.BurstSize,
			UserAgent: cfg.UserAgent,
			Metrics:   cfg.Metrics,
		}),
	}
}

// NewWithHTTPClient creates a Crossref client that uses httpClient.
func NewWithHTTPClient(cfg Config, httpClient *sources.HTTPClient) *Client {
	cfg.applyDefaults()
	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Cite resolves a DOI or doi.org URL and renders a {{cite journal}} template.
func (c *Client) Cite(ctx context.Context, identifier string) (*domain.Citation, error) {
	doi := domain.StripDOIURL(identifier)

	work, err := c.GetWork(ctx, doi)
	if err != nil {
		return nil, err
	}

	return buildCitation(doi, work), nil
}

// GetWork fetches the work record for a bare DOI.
func (c *Client) GetWork(ctx context.Context, doi string) (*Work, error) {
	if strings.TrimSpace(doi) == "" {
		return nil, domain.NewValidationError("identifier", "Could not extract DOI from identifier")
	}

	reqURL, err := c.workURL(doi)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.NewNotFoundError("DOI", doi)
	}
	if err := sources.ErrorFromResponse(sourceName, resp); err != nil {
		return nil, err
	}

	var workResp WorkResponse
	if err := sources.DecodeJSON(resp.Body, &workResp); err != nil {
		return nil, err
	}

	return &workResp.Message, nil
}

// Kinds returns the identifier kinds served by Crossref.
func (c *Client) Kinds() []domain.IdentifierKind {
	return []domain.IdentifierKind{domain.KindDOI, domain.KindDOIURL}
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is currently enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

func (c *Client) workURL(doi string) (string, error) {
	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	u := base.JoinPath("works", doi)
	if c.config.Mailto != "" {
		q := u.Query()
		q.Set("mailto", c.config.Mailto)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// buildCitation renders authors, title, journal, year, volume, issue, pages, doi.
func buildCitation(doi string, work *Work) *domain.Citation {
	authors := make([]domain.PersonName, 0, len(work.Author))
	for _, a := range work.Author {
		last := a.Family
		if last == "" {
			last = a.Name
		}
		authors = append(authors, domain.PersonName{Last: last, First: a.Given})
	}

	year := ""
	if y := work.Created.Year(); y > 0 {
		year = strconv.Itoa(y)
	}

	return domain.NewCitation(domain.TemplateJournal).
		AddSplitAuthors(authors).
		Add("title", first(work.Title)).
		Add("journal", first(work.ContainerTitle)).
		Add("year", year).
		Add("volume", work.Volume).
		Add("issue", work.Issue).
		Add("pages", work.Page).
		Add("doi", doi)
}
