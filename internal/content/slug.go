package content

import (
	"strings"
	"unicode"

	"github.com/igusev/sitesearch/internal/model"
)

// Slugify lower-cases s and joins its letter/digit runs with hyphens
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// DocumentID derives a stable id from the document type and a slug or path
// Path segments are flattened: ("docs", "api/auth") -> "docs-api-auth".
func DocumentID(t model.DocumentType, slug string) string {
	s := Slugify(slug)
	if s == "" {
		s = "index"
	}
	return string(t) + "-" + s
}

// JoinURL joins a site origin, a path prefix and a slug into a URL
// Repeated slashes are collapsed; the result always has a leading slash after the origin.
func JoinURL(base, prefix, slug string) string {
	var parts []string
	for _, p := range []string{prefix, slug} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(parts, "/")
}
