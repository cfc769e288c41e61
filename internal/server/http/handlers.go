package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/helixir/citation-service/internal/citation"
	"github.com/helixir/citation-service/internal/domain"
	"github.com/helixir/citation-service/internal/observability"
)

const maxRequestBodySize = 1 << 20 // 1 MB limit for request bodies

// createCitation handles POST /api/citation.
func (s *Server) createCitation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req citationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}

	s.cite(w, r, req)
}

// getCitation handles GET /api/citation?identifier=...
func (s *Server) getCitation(w http.ResponseWriter, r *http.Request) {
	s.cite(w, r, citationRequest{Identifier: r.URL.Query().Get("identifier")})
}

func (s *Server) cite(w http.ResponseWriter, r *http.Request, req citationRequest) {
	req.Identifier = strings.TrimSpace(req.Identifier)
	if msg := s.validateRequest(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	result, err := s.generator.Generate(ctx, req.Identifier)
	if err != nil {
		logger := observability.LoggerFromContext(ctx, s.logger)
		logger.Debug().
			Err(err).
			Str("reason", citation.FailureReason(err)).
			Msg("citation request failed")
		writeCitationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultToResponse(result))
}

// validateRequest returns a client-facing message, or "" when req is valid.
func (s *Server) validateRequest(req citationRequest) string {
	if err := s.validate.Struct(req); err != nil {
		return validationMessage(err, s.cfg.MaxIdentifierLength)
	}
	if err := s.validate.Var(req.Identifier, fmt.Sprintf("max=%d", s.cfg.MaxIdentifierLength)); err != nil {
		return validationMessage(err, s.cfg.MaxIdentifierLength)
	}
	return ""
}

func validationMessage(err error, maxLen int) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	switch verrs[0].Tag() {
	case "required":
		return "identifier is required"
	case "max":
		return fmt.Sprintf("identifier must be at most %d characters", maxLen)
	default:
		return "identifier is invalid"
	}
}

// writeCitationError maps a generation failure to an HTTP status and writes
// the most specific message available.
func writeCitationError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	writeError(w, statusForError(err), citation.UserMessage(err))
}

func statusForError(err error) int {
	var apiErr *domain.ExternalAPIError
	switch {
	case errors.Is(err, domain.ErrUnsupportedIdentifier), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
