package sources

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/helixir/citation-service/internal/observability"
)

// DefaultUserAgent is sent when a source does not configure its own.
const DefaultUserAgent = "Helixir-CitationService/1.0"

// HTTPClientConfig configures the HTTP client.
type HTTPClientConfig struct {
	// Source is the metrics label for requests made through this client.
	Source string

	// Timeout is the request timeout for HTTP operations.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// APIKey is an optional API key sent in APIKeyHeader.
	APIKey string

	// APIKeyHeader is the header name for the API key (e.g. "x-api-key").
	APIKeyHeader string

	// Metrics receives per-request observations. Optional.
	Metrics *observability.Metrics
}

// HTTPClient wraps http.Client with rate limiting and request metrics.
// Requests are never retried: each call is exactly one outbound attempt.
// It is safe for concurrent use.
type HTTPClient struct {
	client      *http.Client
	rateLimiter *RateLimiter
	config      HTTPClientConfig
}

// NewHTTPClient creates a new HTTP client with rate limiting.
func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 10
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Source == "" {
		cfg.Source = "unknown"
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: NewRateLimiter(cfg.RateLimit, cfg.BurstSize),
		config:      cfg,
	}
}

// Do waits for the rate limiter, sets the User-Agent and optional API key
// headers, and executes req once.
//
// Client timeouts are reported as errors wrapping context.DeadlineExceeded so
// callers can test for them with errors.Is regardless of which layer fired.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if c.config.APIKey != "" && c.config.APIKeyHeader != "" {
		req.Header.Set(c.config.APIKeyHeader, c.config.APIKey)
	}

	if err := c.rateLimiter.Wait(req.Context()); err != nil {
		c.config.Metrics.RecordSourceRequestFailed(c.config.Source, ErrorType(err))
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	c.config.Metrics.RecordSourceRequest(c.config.Source, time.Since(start).Seconds())

	if err != nil {
		err = NormalizeTimeout(err)
		c.config.Metrics.RecordSourceRequestFailed(c.config.Source, ErrorType(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.config.Metrics.RecordSourceRateLimited(c.config.Source)
	}
	if resp.StatusCode >= 400 {
		c.config.Metrics.RecordSourceRequestFailed(c.config.Source, fmt.Sprintf("http_%d", resp.StatusCode))
	}

	return resp, nil
}

// NormalizeTimeout makes net/http client timeouts match context.DeadlineExceeded.
// Body reads that outlive the client timeout need it as well.
func NormalizeTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return err
}

// ErrorType classifies err into a short label for metrics and logs.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "network"
	}
}
