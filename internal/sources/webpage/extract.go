package webpage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageMetadata is what Extract pulls out of an HTML document.
type PageMetadata struct {
	Title    string
	SiteName string
	URL      string
	Author   string
	Date     string
}

// Extract reads citation metadata from doc. Each field walks its fallback
// chain and keeps the first non-empty trimmed value. pageURL is used when the
// page declares no og:url.
func Extract(doc *goquery.Document, pageURL string) PageMetadata {
	return PageMetadata{
		Title: firstNonEmpty(
			metaContent(doc, "og:title"),
			doc.Find("title").First().Text(),
		),
		SiteName: metaContent(doc, "og:site_name"),
		URL: firstNonEmpty(
			metaContent(doc, "og:url"),
			pageURL,
		),
		Author: firstNonEmpty(
			metaContent(doc, "article:author"),
			metaContent(doc, "author"),
			doc.Find(".author").First().Text(),
			doc.Find(".byline").First().Text(),
		),
		Date: truncateDate(firstNonEmpty(
			metaContent(doc, "article:published_time"),
			metaContent(doc, "date"),
			doc.Find("time").First().AttrOr("datetime", ""),
		)),
	}
}

// metaContent returns the content of meta[property=name], falling back to meta[name=name].
func metaContent(doc *goquery.Document, name string) string {
	if v := strings.TrimSpace(doc.Find(`meta[property="` + name + `"]`).First().AttrOr("content", "")); v != "" {
		return v
	}
	return strings.TrimSpace(doc.Find(`meta[name="` + name + `"]`).First().AttrOr("content", ""))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// truncateDate keeps the first 10 characters, the YYYY-MM-DD part of an ISO timestamp.
func truncateDate(date string) string {
	if r := []rune(date); len(r) > 10 {
		return string(r[:10])
	}
	return date
}
