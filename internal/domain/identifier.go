// Package domain provides identifier classification, citation templates, and the
// error taxonomy shared by the citation service.
package domain

import (
	"regexp"
	"strings"
)

// IdentifierKind is the classification of a raw identifier string.
type IdentifierKind string

// Identifier kinds, in classification priority order.
const (
	KindDOI         IdentifierKind = "DOI"
	KindDOIURL      IdentifierKind = "DOI_URL"
	KindPMID        IdentifierKind = "PMID"
	KindS2CID       IdentifierKind = "S2CID"
	KindGoogleBooks IdentifierKind = "GOOGLE_BOOKS"
	KindWebURL      IdentifierKind = "WEB_URL"
	KindUnknown     IdentifierKind = "UNKNOWN"
)

// SupportedKinds lists every kind a source can be registered for.
var SupportedKinds = []IdentifierKind{
	KindDOI,
	KindDOIURL,
	KindPMID,
	KindS2CID,
	KindGoogleBooks,
	KindWebURL,
}

var (
	doiPattern         = regexp.MustCompile(`^10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+$`)
	doiURLPattern      = regexp.MustCompile(`^https?://(dx\.)?doi\.org/`)
	pmidPattern        = regexp.MustCompile(`(?i)^PMID:?\s*\d+$`)
	barePMIDPattern    = regexp.MustCompile(`^\d{1,8}$`)
	s2cidPattern       = regexp.MustCompile(`(?i)^S2CID:?\s*\d+$`)
	googleBooksPattern = regexp.MustCompile(`^https?://books\.google`)
	webURLPattern      = regexp.MustCompile(`^https?://`)

	pmidPrefix  = regexp.MustCompile(`(?i)^PMID:?\s*`)
	s2cidPrefix = regexp.MustCompile(`(?i)^S2CID:?\s*`)
)

// Classify maps a raw identifier to exactly one kind. The first matching rule wins.
//
// A bare number of up to eight digits is treated as a PMID. This also captures
// years and other short numbers; the heuristic is kept as-is.
func Classify(raw string) IdentifierKind {
	s := strings.TrimSpace(raw)

	switch {
	case doiPattern.MatchString(s):
		return KindDOI
	case doiURLPattern.MatchString(s):
		return KindDOIURL
	case pmidPattern.MatchString(s) || barePMIDPattern.MatchString(s):
		return KindPMID
	case s2cidPattern.MatchString(s):
		return KindS2CID
	case googleBooksPattern.MatchString(s):
		return KindGoogleBooks
	case webURLPattern.MatchString(s):
		return KindWebURL
	default:
		return KindUnknown
	}
}

// String returns the tag name.
func (k IdentifierKind) String() string {
	return string(k)
}

// Valid reports whether k is a kind a source can serve.
func (k IdentifierKind) Valid() bool {
	for _, s := range SupportedKinds {
		if s == k {
			return true
		}
	}
	return false
}

// StripDOIURL removes a leading http(s)://(dx.)doi.org/ from a DOI.
func StripDOIURL(s string) string {
	return doiURLPattern.ReplaceAllString(strings.TrimSpace(s), "")
}

// StripPMIDPrefix removes a leading "PMID:" marker.
func StripPMIDPrefix(s string) string {
	return pmidPrefix.ReplaceAllString(strings.TrimSpace(s), "")
}

// StripS2CIDPrefix removes a leading "S2CID:" marker.
func StripS2CIDPrefix(s string) string {
	return s2cidPrefix.ReplaceAllString(strings.TrimSpace(s), "")
}
