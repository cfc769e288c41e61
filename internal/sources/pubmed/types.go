// Package pubmed provides a citation source backed by the NCBI E-utilities
// esummary endpoint.
//
// API Documentation: https://www.ncbi.nlm.nih.gov/books/NBK25499/
package pubmed

import "encoding/json"

// ESummaryResponse is the JSON envelope returned by esummary.fcgi.
// Result is keyed by PMID, plus a "uids" member listing the returned ids.
type ESummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

// DocumentSummary is one record from the esummary result map.
type DocumentSummary struct {
	UID         string   `json:"uid"`
	PubDate     string   `json:"pubdate"`
	Source      string   `json:"source"`
	Authors     []Author `json:"authors"`
	Title       string   `json:"title"`
	Volume      string   `json:"volume"`
	Issue       string   `json:"issue"`
	Pages       string   `json:"pages"`
	ELocationID string   `json:"elocationid"`

	// Error is set by NCBI for ids it cannot resolve.
	Error string `json:"error,omitempty"`
}

// Author is an esummary author entry. Name is the display form, e.g. "Doe J".
type Author struct {
	Name     string `json:"name"`
	AuthType string `json:"authtype"`
}
