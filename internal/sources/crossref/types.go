// Package crossref provides a citation source backed by the Crossref REST API.
//
// Crossref is the DOI registration agency for most scholarly journals. This
// package resolves a DOI (bare or as a doi.org URL) through the works endpoint
// and renders a {{cite journal}} template.
//
// API Documentation: https://api.crossref.org/swagger-ui/index.html
package crossref

// WorkResponse is the envelope returned by GET /works/{doi}.
type WorkResponse struct {
	Status  string `json:"status"`
	Message Work   `json:"message"`
}

// Work is the subset of a Crossref work record used for citations.
type Work struct {
	DOI            string    `json:"DOI"`
	Title          []string  `json:"title"`
	ContainerTitle []string  `json:"container-title"`
	Created        *DateInfo `json:"created,omitempty"`
	Volume         string    `json:"volume"`
	Issue          string    `json:"issue"`
	Page           string    `json:"page"`
	Author         []Author  `json:"author"`
}

// DateInfo holds Crossref's nested date-parts representation, e.g. [[2020, 9, 16]].
type DateInfo struct {
	DateParts [][]int `json:"date-parts"`
}

// Author is a contributor entry. Organizational authors carry Name instead of
// Family/Given.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

// Year returns the first date-part of the creation date, or 0.
func (d *DateInfo) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
