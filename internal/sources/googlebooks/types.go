// Package googlebooks provides a citation source backed by the Google Books
// volumes API.
//
// API Documentation: https://developers.google.com/books/docs/v1/reference/volumes/get
package googlebooks

// Volume is the response of GET /volumes/{id}.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo holds the bibliographic fields of a volume.
type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

// IndustryIdentifier is a typed identifier such as ISBN_10 or ISBN_13.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ISBN returns the ISBN-13 if present, else the ISBN-10, else "".
func (v VolumeInfo) ISBN() string {
	isbn10 := ""
	for _, id := range v.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			if isbn10 == "" {
				isbn10 = id.Identifier
			}
		}
	}
	return isbn10
}

// Year returns the first four characters of PublishedDate.
func (v VolumeInfo) Year() string {
	if len(v.PublishedDate) < 4 {
		return v.PublishedDate
	}
	return v.PublishedDate[:4]
}
