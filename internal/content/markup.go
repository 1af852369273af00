package content

import (
	"html"
	"strings"

	"github.com/igusev/sitesearch/internal/model"
	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes every tag; script and style bodies go with them
var strictPolicy = bluemonday.StrictPolicy()

// StripMarkup reduces HTML fragments to their plain text
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// singleLine strips markup and collapses all whitespace to single spaces
func singleLine(s string) string {
	return strings.Join(strings.Fields(StripMarkup(s)), " ")
}

// Normalize cleans every text field of doc
// Title, description and category become single-line plain text; content keeps its line breaks.
func Normalize(doc model.SearchDocument) model.SearchDocument {
	doc.ID = strings.TrimSpace(doc.ID)
	doc.URL = strings.TrimSpace(doc.URL)
	doc.Title = singleLine(doc.Title)
	doc.Description = singleLine(doc.Description)
	doc.Category = singleLine(doc.Category)
	doc.Content = strings.TrimSpace(StripMarkup(doc.Content))
	return doc
}
