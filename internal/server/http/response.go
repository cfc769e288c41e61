package httpserver

import "github.com/helixir/citation-service/internal/citation"

// citationRequest is the JSON request body for POST /api/citation.
type citationRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type citationResponse struct {
	Citation       string `json:"citation"`
	IdentifierType string `json:"identifier_type"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type readinessResponse struct {
	Status  string   `json:"status"`
	Sources []string `json:"sources"`
}

func resultToResponse(r *citation.Result) citationResponse {
	return citationResponse{
		Citation:       r.Citation,
		IdentifierType: r.Kind.String(),
	}
}
