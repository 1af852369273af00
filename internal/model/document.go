// Package model defines the searchable document shared by every search component
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownType is returned when a document type is not part of the closed set
var ErrUnknownType = errors.New("unknown document type")

// DocumentType is the content category of a document
type DocumentType string

// Closed set of document types
const (
	TypeProduct    DocumentType = "product"
	TypeBlog       DocumentType = "blog"
	TypeDocs       DocumentType = "docs"
	TypeWhitepaper DocumentType = "whitepaper"
	TypeLearn      DocumentType = "learn"
	TypePage       DocumentType = "page"
)

var allTypes = []DocumentType{TypeProduct, TypeBlog, TypeDocs, TypeWhitepaper, TypeLearn, TypePage}

// AllDocumentTypes returns every document type in display order
func AllDocumentTypes() []DocumentType {
	out := make([]DocumentType, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseDocumentType validates s against the closed set (case-insensitive)
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Valid reports whether t belongs to the closed set
func (t DocumentType) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the human readable name used in filters and result lists
func (t DocumentType) Label() string {
	switch t {
	case TypeProduct:
		return "Products"
	case TypeBlog:
		return "Blog"
	case TypeDocs:
		return "Docs"
	case TypeWhitepaper:
		return "White Papers"
	case TypeLearn:
		return "Learn"
	case TypePage:
		return "Pages"
	default:
		return string(t)
	}
}

// Icon returns a single glyph shown next to suggestions of this type
func (t DocumentType) Icon() string {
	switch t {
	case TypeProduct:
		return "◆"
	case TypeBlog:
		return "✎"
	case TypeDocs:
		return "☰"
	case TypeWhitepaper:
		return "▤"
	case TypeLearn:
		return "✦"
	default:
		return "•"
	}
}

// SearchDocument is one searchable unit of site content
type SearchDocument struct {
	ID          string       `json:"id" yaml:"id"`
	Type        DocumentType `json:"type" yaml:"type"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Content     string       `json:"content,omitempty" yaml:"content,omitempty"`
	URL         string       `json:"url" yaml:"url"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty"`
	Date        time.Time    `json:"date,omitempty" yaml:"date,omitempty"` // zero when the source has no date
}

// Validate checks the fields every indexed document must carry
func (d SearchDocument) Validate() error {
	switch {
	case strings.TrimSpace(d.ID) == "":
		return errors.New("document has no id")
	case strings.TrimSpace(d.Title) == "":
		return fmt.Errorf("document %s has no title", d.ID)
	case strings.TrimSpace(d.URL) == "":
		return fmt.Errorf("document %s has no url", d.ID)
	case !d.Type.Valid():
		return fmt.Errorf("document %s: %w: %q", d.ID, ErrUnknownType, d.Type)
	}
	return nil
}

// HasDate reports whether the document carries a publication date
func (d SearchDocument) HasDate() bool {
	return !d.Date.IsZero()
}

// DisplayString returns formatted display string in style: [Type] > Title
// For a blog post titled "Security Tips" returns "[Blog] > Security Tips"
func (d SearchDocument) DisplayString() string {
	if d.Category != "" {
		return "[" + d.Type.Label() + " / " + d.Category + "] > " + d.Title
	}
	return "[" + d.Type.Label() + "] > " + d.Title
}
