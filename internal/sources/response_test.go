package sources

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/citation-service/internal/domain"
)

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestErrorFromResponse(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{name: "json error member", status: 400, body: `{"error":"Invalid id","message":"ignored"}`, expectedMessage: "Invalid id"},
		{name: "json message member", status: 500, body: `{"message":"Internal failure"}`, expectedMessage: "Internal failure"},
		{name: "plain text body", status: 503, body: "Service Unavailable\n", expectedMessage: "Service Unavailable"},
		{name: "empty body", status: 502, body: "", expectedMessage: "Bad Gateway"},
		{name: "json without members", status: 418, body: `{}`, expectedMessage: "{}"},
		{name: "html error page", status: 403, body: "<!doctype html><html><body>Denied</body></html>", expectedMessage: "Forbidden"},
		{name: "oversized body", status: 500, body: strings.Repeat("x", 600), expectedMessage: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ErrorFromResponse("Crossref", newResponse(tt.status, tt.body))
			require.Error(t, err)

			var apiErr *domain.ExternalAPIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "Crossref", apiErr.Source)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectedMessage, apiErr.Message)
		})
	}

	t.Run("429 wraps ErrRateLimited", func(t *testing.T) {
		err := ErrorFromResponse("Semantic Scholar", newResponse(http.StatusTooManyRequests, `{"message":"Too Many Requests"}`))
		assert.True(t, errors.Is(err, domain.ErrRateLimited))
	})

	t.Run("2xx is not an error", func(t *testing.T) {
		assert.NoError(t, ErrorFromResponse("Crossref", newResponse(204, "")))
	})
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}
	require.NoError(t, DecodeJSON(strings.NewReader(`{"title":"x"}`), &v))
	assert.Equal(t, "x", v.Title)

	err := DecodeJSON(strings.NewReader(`not json`), &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}
