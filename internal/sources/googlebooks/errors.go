package googlebooks

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/sources"
)

// apiError is the Google APIs error envelope:
// {"error": {"code": 400, "message": "..."}}.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorFromResponse unwraps Google's nested error object and otherwise
// defers to sources.ErrorFromResponse.
func errorFromResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.NewExternalAPIError(sourceName, resp.StatusCode, "failed to read error response", err)
	}

	var gErr apiError
	if json.Unmarshal(body, &gErr) == nil && gErr.Error.Message != "" {
		return domain.NewExternalAPIError(sourceName, resp.StatusCode, gErr.Error.Message, nil)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return sources.ErrorFromResponse(sourceName, resp)
}
