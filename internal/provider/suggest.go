package provider

import (
	"strings"

	"github.com/igusev/sitesearch/internal/model"
	"github.com/igusev/sitesearch/internal/search"
)

// Suggestion list sizes
const (
	SuggestionLimit        = 5
	RecentSuggestionLimit  = 3
	PopularSuggestionLimit = 6
)

// SuggestionKind tells what activating a suggestion does
type SuggestionKind int

const (
	// SuggestDocument navigates to the document URL
	SuggestDocument SuggestionKind = iota
	// SuggestRecent re-runs a recent search
	SuggestRecent
	// SuggestPopular runs a popular search
	SuggestPopular
)

// Suggestion is one navigable entry of the suggestions panel
type Suggestion struct {
	Kind     SuggestionKind
	Document model.SearchDocument // set for SuggestDocument
	Term     string               // set for recent and popular terms
}

// Label returns the text shown for the suggestion
func (s Suggestion) Label() string {
	if s.Kind == SuggestDocument {
		return s.Document.Title
	}
	return s.Term
}

// Suggestions is the content of the suggestions panel for one query
// A blank query lists recent and popular terms; otherwise matching documents.
type Suggestions struct {
	Query     string
	Documents []model.SearchDocument
	Recent    []string
	Popular   []string
}

// Items flattens the groups into the keyboard-navigable order:
// documents, then recent, then popular
func (s Suggestions) Items() []Suggestion {
	items := make([]Suggestion, 0, s.Len())
	for _, d := range s.Documents {
		items = append(items, Suggestion{Kind: SuggestDocument, Document: d})
	}
	for _, t := range s.Recent {
		items = append(items, Suggestion{Kind: SuggestRecent, Term: t})
	}
	for _, t := range s.Popular {
		items = append(items, Suggestion{Kind: SuggestPopular, Term: t})
	}
	return items
}

// Len returns the total number of items
func (s Suggestions) Len() int {
	return len(s.Documents) + len(s.Recent) + len(s.Popular)
}

// Empty reports whether there is nothing to show
func (s Suggestions) Empty() bool {
	return s.Len() == 0
}

// Suggest returns the suggestions for the live query
func (p *Provider) Suggest(query string) Suggestions {
	if strings.TrimSpace(query) == "" {
		recent := p.RecentSearches()
		if len(recent) > RecentSuggestionLimit {
			recent = recent[:RecentSuggestionLimit]
		}
		popular := p.PopularSearches()
		if len(popular) > PopularSuggestionLimit {
			popular = popular[:PopularSuggestionLimit]
		}
		return Suggestions{Query: query, Recent: recent, Popular: popular}
	}

	return Suggestions{
		Query:     query,
		Documents: p.Search(query, search.Options{Limit: SuggestionLimit, Fuzzy: true}),
	}
}
