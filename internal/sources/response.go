package sources

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/helixir/citation-service/internal/domain"
)

// MaxBodySize bounds how much of an upstream response body is read.
const MaxBodySize = 10 << 20

// ErrorResponse is the common JSON error shape returned by upstream APIs.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// maxPlainMessage caps how much of a non-JSON error body is reported.
const maxPlainMessage = 512

// ErrorFromResponse returns nil for 2xx responses and an ExternalAPIError
// otherwise. The message is the upstream JSON "error" member, then "message",
// then a short plain-text body, then the HTTP status text. HTML error pages
// are never echoed. A 429 wraps domain.ErrRateLimited.
func ErrorFromResponse(source string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.NewExternalAPIError(source, resp.StatusCode, "failed to read error response", err)
	}

	message := strings.TrimSpace(string(body))
	if strings.HasPrefix(message, "<") || len(message) > maxPlainMessage {
		message = ""
	}

	var errResp ErrorResponse
	if json.Unmarshal(body, &errResp) == nil {
		switch {
		case errResp.Error != "":
			message = errResp.Error
		case errResp.Message != "":
			message = errResp.Message
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	var cause error
	if resp.StatusCode == http.StatusTooManyRequests {
		cause = domain.ErrRateLimited
	}
	return domain.NewExternalAPIError(source, resp.StatusCode, message, cause)
}

// DecodeJSON decodes a size-limited response body into v.
func DecodeJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(io.LimitReader(r, MaxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
