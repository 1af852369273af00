package search

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/igusev/sitesearch/internal/index"
	"github.com/igusev/sitesearch/internal/model"
)

func buildIndex(t *testing.T, docs []model.SearchDocument) *index.Index {
	t.Helper()
	idx, err := index.Build(docs)
	if err != nil {
		t.Fatalf("Failed to build index: %v", err)
	}
	return idx
}

func exampleIndex(t *testing.T) *index.Index {
	return buildIndex(t, []model.SearchDocument{
		{ID: "p1", Type: model.TypeProduct, Title: "TorScan", Description: "Dark web scanner", URL: "/products/torscan"},
		{ID: "b1", Type: model.TypeBlog, Title: "Security Tips", Description: "General AI security advice", URL: "/blog/tips"},
		{ID: "w1", Type: model.TypeWhitepaper, Title: "Compliance Framework", Description: "Mapping controls to SOC 2", URL: "/whitepapers/compliance"},
	})
}

func ids(docs []model.SearchDocument) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestSearch_Scenarios(t *testing.T) {
	idx := exampleIndex(t)

	tests := []struct {
		name     string
		query    string
		opts     Options
		expected []string
	}{
		{name: "substring of title and prefix of description", query: "scan", opts: DefaultOptions(), expected: []string{"p1"}},
		{name: "short exact term", query: "ai", opts: DefaultOptions(), expected: []string{"b1"}},
		{name: "type filter excludes every match", query: "scan", opts: Options{Type: model.TypeBlog}, expected: []string{}},
		{name: "no match", query: "zzzznotfound", opts: DefaultOptions(), expected: []string{}},
		{name: "typo with fuzzy", query: "comliance", opts: Options{Fuzzy: true}, expected: []string{"w1"}},
		{name: "typo without fuzzy", query: "comliance", opts: Options{Fuzzy: false}, expected: []string{}},
		{name: "prefix without fuzzy", query: "compl", opts: DefaultOptions(), expected: []string{"w1"}},
		{name: "case insensitive", query: "TORSCAN", opts: DefaultOptions(), expected: []string{"p1"}},
		{name: "punctuation ignored", query: "security!!!", opts: DefaultOptions(), expected: []string{"b1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ids(Search(idx, tt.query, tt.opts))
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Search(%q, %+v) = %v, want %v", tt.query, tt.opts, result, tt.expected)
			}
		})
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	idx := exampleIndex(t)

	for _, q := range []string{"", "   ", "\t\n", "!!!"} {
		result := Search(idx, q, DefaultOptions())
		if result == nil {
			t.Errorf("Search(%q) returned nil, want empty slice", q)
		}
		if len(result) != 0 {
			t.Errorf("Search(%q) returned %d results, want 0", q, len(result))
		}
	}
}

func TestSearch_NilIndex(t *testing.T) {
	if result := Search(nil, "scan", DefaultOptions()); len(result) != 0 {
		t.Errorf("Search on nil index should be empty, got %v", ids(result))
	}
}

func TestSearch_Deterministic(t *testing.T) {
	var docs []model.SearchDocument
	for i := 0; i < 40; i++ {
		docs = append(docs, model.SearchDocument{
			ID:          fmt.Sprintf("d%02d", i),
			Type:        model.AllDocumentTypes()[i%6],
			Title:       fmt.Sprintf("Security guide %d", i%5),
			Description: strings.Repeat("threat ", i%4+1),
			URL:         fmt.Sprintf("/d/%d", i),
		})
	}
	idx := buildIndex(t, docs)

	opts := Options{Limit: 25, Fuzzy: true}
	first := ids(Search(idx, "security threat guide", opts))
	for i := 0; i < 20; i++ {
		again := ids(Search(idx, "security threat guide", opts))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Run %d differs:\n%v\n%v", i, first, again)
		}
	}
}

func TestSearch_MoreDistinctTermsRankHigher(t *testing.T) {
	idx := buildIndex(t, []model.SearchDocument{
		// Heavy single-term document first so build order cannot explain the result
		{ID: "heavy", Type: model.TypeDocs, Title: "Cloud", Category: "Cloud", Description: "cloud cloud", Content: strings.Repeat("cloud ", 50), URL: "/heavy"},
		{ID: "both", Type: model.TypeDocs, Title: "Misc", Content: "cloud scanner", URL: "/both"},
	})

	matches := SearchScored(idx, "cloud scanner", DefaultOptions())
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Document.ID != "both" {
		t.Errorf("Document matching both terms should rank first, got %s", matches[0].Document.ID)
	}
	if matches[0].MatchedTerms != 2 || matches[1].MatchedTerms != 1 {
		t.Errorf("Unexpected matched term counts: %d, %d", matches[0].MatchedTerms, matches[1].MatchedTerms)
	}
	if matches[1].Score <= matches[0].Score {
		t.Error("Test setup: the single-term document should carry the higher raw score")
	}
}

func TestSearch_TitleOutranksContent(t *testing.T) {
	idx := buildIndex(t, []model.SearchDocument{
		{ID: "content", Type: model.TypeBlog, Title: "Weekly notes", Content: "ransomware", URL: "/c"},
		{ID: "title", Type: model.TypeBlog, Title: "Ransomware", URL: "/t"},
		{ID: "desc", Type: model.TypeBlog, Title: "Threats", Description: "ransomware", URL: "/d"},
		{ID: "cat", Type: model.TypeBlog, Title: "Other", Category: "Ransomware", URL: "/k"},
	})

	result := ids(Search(idx, "ransomware", DefaultOptions()))
	expected := []string{"title", "cat", "desc", "content"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Field weighting order = %v, want %v", result, expected)
	}
}

func TestSearch_ExactBeatsPrefix(t *testing.T) {
	idx := buildIndex(t, []model.SearchDocument{
		{ID: "prefix", Type: model.TypeDocs, Title: "Scanner", URL: "/p"},
		{ID: "exact", Type: model.TypeDocs, Title: "Scan", URL: "/e"},
	})

	result := ids(Search(idx, "scan", DefaultOptions()))
	if len(result) != 2 || result[0] != "exact" {
		t.Errorf("Exact match should rank first, got %v", result)
	}
}

func TestSearch_TieBrokenByBuildOrder(t *testing.T) {
	idx := buildIndex(t, []model.SearchDocument{
		{ID: "z", Type: model.TypeDocs, Title: "Firewall", URL: "/z"},
		{ID: "a", Type: model.TypeDocs, Title: "Firewall", URL: "/a"},
		{ID: "m", Type: model.TypeDocs, Title: "Firewall", URL: "/m"},
	})

	result := ids(Search(idx, "firewall", DefaultOptions()))
	expected := []string{"z", "a", "m"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Ties should keep build order: got %v, want %v", result, expected)
	}
}

func TestSearch_TypeFilter(t *testing.T) {
	var docs []model.SearchDocument
	for i, typ := range model.AllDocumentTypes() {
		for j := 0; j < 3; j++ {
			docs = append(docs, model.SearchDocument{
				ID:    fmt.Sprintf("%s-%d", typ, j),
				Type:  typ,
				Title: fmt.Sprintf("Zero trust %d", i),
				URL:   fmt.Sprintf("/%s/%d", typ, j),
			})
		}
	}
	idx := buildIndex(t, docs)

	for _, typ := range model.AllDocumentTypes() {
		result := Search(idx, "zero trust", Options{Type: typ, Limit: MaxLimit})
		if len(result) != 3 {
			t.Errorf("Type %s: expected all 3 matching documents, got %d", typ, len(result))
		}
		for _, doc := range result {
			if doc.Type != typ {
				t.Errorf("Type filter %s leaked document %s of type %s", typ, doc.ID, doc.Type)
			}
		}
	}
}

func TestSearch_Limit(t *testing.T) {
	var docs []model.SearchDocument
	for i := 0; i < 130; i++ {
		docs = append(docs, model.SearchDocument{
			ID:    fmt.Sprintf("g%03d", i),
			Type:  model.TypeLearn,
			Title: fmt.Sprintf("Guide %d", i),
			URL:   fmt.Sprintf("/learn/%d", i),
		})
	}
	idx := buildIndex(t, docs)

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "explicit", limit: 5, expected: 5},
		{name: "zero uses default", limit: 0, expected: DefaultLimit},
		{name: "negative uses default", limit: -3, expected: DefaultLimit},
		{name: "capped at max", limit: 1000, expected: MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Search(idx, "guide", Options{Limit: tt.limit})
			if len(result) != tt.expected {
				t.Errorf("Limit %d: got %d results, want %d", tt.limit, len(result), tt.expected)
			}
		})
	}
}

func TestSearchScored_TermsReported(t *testing.T) {
	idx := exampleIndex(t)

	matches := SearchScored(idx, "scan", DefaultOptions())
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if !reflect.DeepEqual(matches[0].Terms, []string{"torscan"}) {
		t.Errorf("Best matching index term = %v, want [torscan]", matches[0].Terms)
	}
}

func TestOptions_EffectiveLimit(t *testing.T) {
	if DefaultOptions().EffectiveLimit() != DefaultLimit {
		t.Errorf("Default limit = %d, want %d", DefaultOptions().EffectiveLimit(), DefaultLimit)
	}
	if DefaultOptions().Fuzzy {
		t.Error("Fuzzy should default to off")
	}
}
