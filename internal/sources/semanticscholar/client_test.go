package semanticscholar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/sources"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with default values", func(t *testing.T) {
		client := NewClient(Config{Enabled: true}, nil)

		require.NotNil(t, client)
		assert.Equal(t, DefaultBaseURL, client.config.BaseURL)
		assert.Equal(t, DefaultTimeout, client.config.Timeout)
		assert.Equal(t, DefaultRateLimit, client.config.RateLimit)
		assert.Equal(t, DefaultBurstSize, client.config.BurstSize)
		assert.True(t, client.config.Enabled)
	})

	t.Run("creates client with custom config", func(t *testing.T) {
		cfg := Config{
			BaseURL:   "https://custom.api.com/v1",
			APIKey:    "test-api-key",
			Timeout:   60 * time.Second,
			RateLimit: 50.0,
			BurstSize: 20,
			Enabled:   true,
		}
		client := NewClient(cfg, nil)

		assert.Equal(t, cfg.BaseURL, client.config.BaseURL)
		assert.Equal(t, cfg.Timeout, client.config.Timeout)
		assert.Equal(t, cfg.RateLimit, client.config.RateLimit)
		assert.Equal(t, cfg.BurstSize, client.config.BurstSize)
	})

	t.Run("uses provided HTTP client", func(t *testing.T) {
		httpClient := sources.NewHTTPClient(sources.HTTPClientConfig{RateLimit: 100, BurstSize: 50})
		client := NewClient(Config{Enabled: true}, httpClient)

		assert.Equal(t, httpClient, client.httpClient)
	})

	t.Run("implements Source interface", func(t *testing.T) {
		client := NewClient(Config{Enabled: true}, nil)

		assert.Equal(t, []domain.IdentifierKind{domain.KindS2CID}, client.Kinds())
		assert.Equal(t, "Semantic Scholar", client.Name())
		assert.True(t, client.IsEnabled())
	})
}

func TestClient_Cite(t *testing.T) {
	paper := PaperResult{
		PaperID: "abc123",
		Title:   "Language Models are Few-Shot Learners",
		Year:    2020,
		Venue:   "Neural Information Processing Systems",
		Authors: []Author{
			{AuthorID: "1", Name: "Tom B. Brown"},
			{AuthorID: "2", Name: "Benjamin Mann"},
		},
		ExternalIDs: &ExternalIDs{DOI: "10.48550/arXiv.2005.14165", CorpusID: 218971783},
	}

	newClient := func(t *testing.T, handler http.HandlerFunc) *Client {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		return NewClient(Config{BaseURL: server.URL, Enabled: true, RateLimit: 100, BurstSize: 10}, nil)
	}

	t.Run("renders full citation", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/paper/S2CID:218971783", r.URL.Path)
			assert.Equal(t, "title,authors,year,venue,externalIds", r.URL.Query().Get("fields"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(paper)
		})

		c, err := client.Cite(context.Background(), "S2CID:218971783")
		require.NoError(t, err)

		assert.Equal(t,
			"{{cite journal | author1=Tom B. Brown | author2=Benjamin Mann | title=Language Models are Few-Shot Learners"+
				" | journal=Neural Information Processing Systems | year=2020 | doi=10.48550/arXiv.2005.14165 | s2cid=218971783 }}",
			c.String())
	})

	t.Run("sends API key header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "s2-key", r.Header.Get("x-api-key"))
			json.NewEncoder(w).Encode(paper)
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL, APIKey: "s2-key", Enabled: true, RateLimit: 100}, nil)
		_, err := client.Cite(context.Background(), "S2CID 218971783")
		require.NoError(t, err)
	})

	t.Run("zero year and missing ids are omitted", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"paperId":"x","title":"Untitled draft","year":0,"venue":"","authors":[]}`))
		})

		c, err := client.Cite(context.Background(), "s2cid:42")
		require.NoError(t, err)

		assert.Equal(t, "{{cite journal | title=Untitled draft | s2cid=42 }}", c.String())
	})

	t.Run("null body returns S2CID not found", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		})

		_, err := client.Cite(context.Background(), "S2CID:1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, "S2CID not found", err.Error())
	})

	t.Run("empty body returns S2CID not found", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		_, err := client.Cite(context.Background(), "S2CID:1")
		require.Error(t, err)
		assert.Equal(t, "S2CID not found", err.Error())
	})

	t.Run("404 returns S2CID not found", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Paper with id S2CID:1 not found"}`))
		})

		_, err := client.Cite(context.Background(), "S2CID:1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, "S2CID not found", err.Error())
	})

	t.Run("upstream error payload is preserved", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Unrecognized or unsupported fields: [bogus]"}`))
		})

		_, err := client.Cite(context.Background(), "S2CID:1")
		require.Error(t, err)

		var apiErr *domain.ExternalAPIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Semantic Scholar", apiErr.Source)
		assert.Equal(t, "Unrecognized or unsupported fields: [bogus]", apiErr.Message)
	})

	t.Run("context cancellation", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(paper)
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Cite(ctx, "S2CID:1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
