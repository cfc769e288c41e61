package googlebooks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/observability"
	"github.com/helixir/citation-service/internal/sources"
)

const (
	// DefaultBaseURL is the base URL for the Google Books API.
	DefaultBaseURL = "https://www.googleapis.com/books/v1"

	DefaultRateLimit = 10.0
	DefaultBurstSize = 10
	DefaultTimeout   = 30 * time.Second

	// MissingIDMessage is returned when a Google Books URL has no id parameter.
	MissingIDMessage = "Could not extract Google Books ID from URL"

	sourceID   = "google_books"
	sourceName = "Google Books"
)

// Config contains configuration options for the Google Books client.
type Config struct {
	BaseURL string

	// APIKey is sent as the key query parameter when set.
	APIKey string

	UserAgent string
	Timeout   time.Duration
	RateLimit float64
	BurstSize int
	Enabled   bool
	Metrics   *observability.Metrics
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

// Client implements sources.Source for Google Books URLs.
type Client struct {
	config     Config
	httpClient *sources.HTTPClient
}

var _ sources.Source = (*Client)(nil)

// New creates a new Google Books client.
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

// NewWithHTTPClient creates a Google Books client that uses httpClient.
func NewWithHTTPClient(cfg Config, httpClient *sources.HTTPClient) *Client {
	cfg.applyDefaults()
	return &Client{config: cfg, httpClient: httpClient}
}

// Cite extracts the volume id from a books.google URL and renders a
// {{cite book}} template. The url field is always the caller's input.
func (c *Client) Cite(ctx context.Context, identifier string) (*domain.Citation, error) {
	rawURL := strings.TrimSpace(identifier)

	id, err := VolumeID(rawURL)
	if err != nil {
		return nil, err
	}

	volume, err := c.GetVolume(ctx, id)
	if err != nil {
		return nil, err
	}

	info := volume.VolumeInfo
	return domain.NewCitation(domain.TemplateBook).
		AddAuthors(info.Authors).
		Add("title", info.Title).
		Add("year", info.Year()).
		Add("publisher", info.Publisher).
		Add("isbn", info.ISBN()).
		Require("url", rawURL), nil
}

// VolumeID returns the id query parameter of a Google Books URL.
func VolumeID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", domain.NewValidationError("identifier", MissingIDMessage)
	}
	id := u.Query().Get("id")
	if id == "" {
		return "", domain.NewValidationError("id", MissingIDMessage)
	}
	return id, nil
}

// GetVolume fetches a volume by id.
func (c *Client) GetVolume(ctx context.Context, id string) (*Volume, error) {
	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	u := base.JoinPath("volumes", id)
	if c.config.APIKey != "" {
		q := u.Query()
		q.Set("key", c.config.APIKey)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.NewNotFoundError("Google Books volume", id)
	}
	if err := errorFromResponse(resp); err != nil {
		return nil, err
	}

	var volume Volume
	if err := sources.DecodeJSON(resp.Body, &volume); err != nil {
		return nil, err
	}
	return &volume, nil
}

// Kinds returns the identifier kinds served by Google Books.
func (c *Client) Kinds() []domain.IdentifierKind {
	return []domain.IdentifierKind{domain.KindGoogleBooks}
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether this source is currently enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}
