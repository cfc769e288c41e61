// Package semanticscholar provides a citation source for S2CID identifiers
// backed by the Semantic Scholar Graph API.
//
// API Documentation: https://api.semanticscholar.org/api-docs/
package semanticscholar

// PaperResult represents a paper returned by GET /paper/S2CID:{id}.
type PaperResult struct {
	// PaperID is the Semantic Scholar unique identifier for the paper.
	PaperID string `json:"paperId"`

	Title string `json:"title"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year"`

	// Venue is the publication venue (conference, journal name, etc.).
	Venue string `json:"venue"`

	Authors []Author `json:"authors"`

	// ExternalIDs contains external identifiers for the paper (DOI, ArXiv, etc.).
	ExternalIDs *ExternalIDs `json:"externalIds,omitempty"`
}

// ExternalIDs contains external identifiers for a paper.
type ExternalIDs struct {
	DOI      string `json:"DOI,omitempty"`
	ArXiv    string `json:"ArXiv,omitempty"`
	PubMed   string `json:"PubMed,omitempty"`
	CorpusID int64  `json:"CorpusId,omitempty"`
}

// Author represents a paper author.
type Author struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}
