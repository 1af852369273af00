package provider

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/igusev/sitesearch/internal/model"
)

func TestSuggest_BlankQuery(t *testing.T) {
	p := readyProvider(t, nil)
	for i := 1; i <= 5; i++ {
		p.AddRecentSearch(fmt.Sprintf("q%d", i))
	}

	s := p.Suggest("  ")
	if !reflect.DeepEqual(s.Recent, []string{"q5", "q4", "q3"}) {
		t.Errorf("Recent = %v", s.Recent)
	}
	if len(s.Popular) != PopularSuggestionLimit {
		t.Errorf("Expected %d popular terms, got %d", PopularSuggestionLimit, len(s.Popular))
	}
	if len(s.Documents) != 0 {
		t.Errorf("Blank query should not list documents, got %d", len(s.Documents))
	}

	items := s.Items()
	if len(items) != 9 || items[0].Kind != SuggestRecent || items[3].Kind != SuggestPopular {
		t.Errorf("Unexpected items: %+v", items)
	}
	if items[0].Label() != "q5" {
		t.Errorf("First label = %q", items[0].Label())
	}
}

func TestSuggest_Query(t *testing.T) {
	p := readyProvider(t, nil)
	p.AddRecentSearch("scan")

	// Fuzzy is on for suggestions
	s := p.Suggest("comliance")
	if len(s.Documents) != 1 || s.Documents[0].ID != "w1" {
		t.Fatalf("Documents = %+v", s.Documents)
	}
	if len(s.Recent) != 0 || len(s.Popular) != 0 {
		t.Error("A non-blank query should only list documents")
	}

	items := s.Items()
	if len(items) != 1 || items[0].Kind != SuggestDocument || items[0].Label() != "Compliance Framework" {
		t.Errorf("Items = %+v", items)
	}
}

func TestSuggest_LimitedToFive(t *testing.T) {
	var docs []model.SearchDocument
	for i := 0; i < 12; i++ {
		docs = append(docs, model.SearchDocument{
			ID:    fmt.Sprintf("d%d", i),
			Type:  model.TypeDocs,
			Title: fmt.Sprintf("Firewall rule %d", i),
			URL:   fmt.Sprintf("/docs/%d", i),
		})
	}
	p := New(Options{Generator: &gatedGenerator{docs: docs}})
	p.Start(context.Background())
	waitDone(t, p)

	if s := p.Suggest("firewall"); len(s.Documents) != SuggestionLimit {
		t.Errorf("Expected %d suggestions, got %d", SuggestionLimit, len(s.Documents))
	}
}

func TestSuggest_NotReady(t *testing.T) {
	p := New(Options{Generator: &gatedGenerator{release: make(chan struct{})}})

	s := p.Suggest("scan")
	if !s.Empty() {
		t.Errorf("Suggestions before build should be empty, got %+v", s)
	}

	// Blank query still offers popular terms
	if blank := p.Suggest(""); len(blank.Popular) == 0 {
		t.Error("Popular terms should be available before the index is ready")
	}
}
