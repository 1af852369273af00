package content

import (
	"context"

	"github.com/igusev/sitesearch/internal/model"
)

// StaticSource serves a fixed list of documents
type StaticSource struct {
	name string
	docs []model.SearchDocument
}

// NewStaticSource creates a source returning docs as given
func NewStaticSource(name string, docs []model.SearchDocument) *StaticSource {
	return &StaticSource{name: name, docs: docs}
}

// Name implements Source
func (s *StaticSource) Name() string {
	return s.name
}

// Load implements Source
func (s *StaticSource) Load(ctx context.Context) ([]model.SearchDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.SearchDocument, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

// SitePages returns the top-level pages every site has
func SitePages(baseURL string) []model.SearchDocument {
	page := func(slug, title, description string) model.SearchDocument {
		return model.SearchDocument{
			ID:          DocumentID(model.TypePage, slug),
			Type:        model.TypePage,
			Title:       title,
			Description: description,
			URL:         JoinURL(baseURL, "", slug),
		}
	}

	return []model.SearchDocument{
		page("", "Home", "Security testing and threat intelligence for modern teams"),
		page("pricing", "Pricing", "Plans and pricing for every team size"),
		page("about", "About us", "Our mission, team and history"),
		page("contact", "Contact", "Talk to sales or get support"),
		page("careers", "Careers", "Open positions and life at the company"),
		page("security", "Security", "How we protect customer data, compliance and responsible disclosure"),
	}
}
