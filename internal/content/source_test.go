package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/igusev/sitesearch/internal/gitlab"
	"github.com/igusev/sitesearch/internal/model"
)

// funcSource adapts a function to Source
type funcSource struct {
	name string
	load func(ctx context.Context) ([]model.SearchDocument, error)
}

func (f funcSource) Name() string { return f.name }

func (f funcSource) Load(ctx context.Context) ([]model.SearchDocument, error) { return f.load(ctx) }

func doc(id string, typ model.DocumentType, title string) model.SearchDocument {
	return model.SearchDocument{ID: id, Type: typ, Title: title, URL: "/" + id}
}

func docIDs(docs []model.SearchDocument) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestGenerate_OrderFollowsRegistration(t *testing.T) {
	slow := funcSource{name: "slow", load: func(ctx context.Context) ([]model.SearchDocument, error) {
		time.Sleep(50 * time.Millisecond)
		return []model.SearchDocument{doc("a1", model.TypeProduct, "A1"), doc("a2", model.TypeProduct, "A2")}, nil
	}}
	fast := funcSource{name: "fast", load: func(ctx context.Context) ([]model.SearchDocument, error) {
		return []model.SearchDocument{doc("b1", model.TypeBlog, "B1")}, nil
	}}

	docs, report, err := NewGenerator(slow, fast).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if got := docIDs(docs); !reflect.DeepEqual(got, []string{"a1", "a2", "b1"}) {
		t.Errorf("Order = %v", got)
	}
	if report.Total != 3 || report.Sources[0].Kept != 2 || report.Sources[1].Kept != 1 {
		t.Errorf("Unexpected report: %+v", report)
	}
}

func TestGenerate_PartialFailure(t *testing.T) {
	broken := funcSource{name: "broken", load: func(ctx context.Context) ([]model.SearchDocument, error) {
		return nil, errors.New("catalog unavailable")
	}}
	ok := NewStaticSource("pages", []model.SearchDocument{doc("page-home", model.TypePage, "Home")})

	docs, report, err := NewGenerator(broken, ok).Generate(context.Background())
	if err != nil {
		t.Fatalf("One failing source must not fail generation: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "page-home" {
		t.Errorf("Expected documents from the healthy source, got %v", docIDs(docs))
	}
	if report.Failed() != 1 || report.Sources[0].Err == nil {
		t.Errorf("Report should record the failure: %+v", report)
	}
}

func TestGenerate_AllSourcesFail(t *testing.T) {
	fail := func(name string) Source {
		return funcSource{name: name, load: func(ctx context.Context) ([]model.SearchDocument, error) {
			return nil, errors.New("down")
		}}
	}

	docs, _, err := NewGenerator(fail("a"), fail("b")).Generate(context.Background())
	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("Expected ErrNoDocuments, got %v", err)
	}
	if docs != nil {
		t.Errorf("Expected no documents, got %v", docIDs(docs))
	}
}

func TestGenerate_NoSources(t *testing.T) {
	docs, _, err := NewGenerator().Generate(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("Expected empty slice, got %v", docs)
	}
}

func TestGenerate_DuplicatesAndInvalid(t *testing.T) {
	first := NewStaticSource("first", []model.SearchDocument{
		doc("shared", model.TypeProduct, "From first"),
		{ID: "no-title", Type: model.TypeBlog, URL: "/x"},
		{ID: "no-url", Type: model.TypeBlog, Title: "T"},
		{ID: "bad-type", Type: "video", Title: "T", URL: "/v"},
	})
	second := NewStaticSource("second", []model.SearchDocument{
		doc("shared", model.TypeBlog, "From second"),
		doc("unique", model.TypeBlog, "Unique"),
	})

	docs, report, err := NewGenerator(first, second).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if got := docIDs(docs); !reflect.DeepEqual(got, []string{"shared", "unique"}) {
		t.Errorf("Documents = %v", got)
	}
	if docs[0].Title != "From first" {
		t.Errorf("First occurrence should win, got %q", docs[0].Title)
	}
	if report.Invalid != 3 || report.Duplicates != 1 {
		t.Errorf("Invalid = %d, Duplicates = %d", report.Invalid, report.Duplicates)
	}
}

func TestGenerate_StripsMarkup(t *testing.T) {
	src := NewStaticSource("html", []model.SearchDocument{{
		ID:          "p",
		Type:        model.TypePage,
		Title:       "<b>Secure</b> &amp;\n fast",
		Description: "<p>Zero <em>trust</em></p>",
		Content:     "<script>alert(1)</script>Hello <a href=\"/x\">world</a>",
		URL:         " /p ",
	}})

	docs, _, err := NewGenerator(src).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	d := docs[0]
	if d.Title != "Secure & fast" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.Description != "Zero trust" {
		t.Errorf("Description = %q", d.Description)
	}
	if d.Content != "Hello world" {
		t.Errorf("Content = %q", d.Content)
	}
	if d.URL != "/p" {
		t.Errorf("URL = %q", d.URL)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewGenerator(NewStaticSource("s", nil)).Generate(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestGenerator_Sources(t *testing.T) {
	g := NewGenerator(NewStaticSource("a", nil))
	g.Add(NewStaticSource("b", nil))

	if got := g.Sources(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Sources = %v", got)
	}
}

func TestMarkdownSource(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write("b-post.md", "---\ntitle: B\n---\nSecond")
	write("a-post.md", "---\ntitle: A\n---\nFirst")
	write("nested/c-post.MD", "# C\n\nThird")
	write("draft.md", "---\ntitle: D\ndraft: true\n---\nHidden")
	write("notes.txt", "not markdown")

	src := NewMarkdownSource("blog", dir, blogLayout)
	if src.Name() != "blog" {
		t.Errorf("Name = %q", src.Name())
	}

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []string{"blog-a-post", "blog-b-post", "blog-nested-c-post"}
	if got := docIDs(docs); !reflect.DeepEqual(got, expected) {
		t.Errorf("Documents = %v, want %v", got, expected)
	}
}

func TestMarkdownSource_SkipsBadPage(t *testing.T) {
	dir := t.TempDir()
	pages := map[string]string{
		"a.md": "---\ntitle: Valid Post\n---\nStill indexed.",
		"b.md": "---\ntitle: Broken Date\ndate: not-a-date\n---\nSkipped.",
		"c.md": "---\ntitle: [unclosed\n---\nSkipped too.",
		"d.md": "# Also Valid\n\nNo front matter.",
	}
	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := NewMarkdownSource("blog", dir, blogLayout).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := docIDs(docs); !reflect.DeepEqual(got, []string{"blog-a", "blog-d"}) {
		t.Errorf("Documents = %v, want [blog-a blog-d]", got)
	}
}

func TestGenerate_BadPageKeepsSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("---\ntitle: A\n---\nBody"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("---\ntitle: B\ndate: not-a-date\n---\n"), 0644); err != nil {
		t.Fatal(err)
	}

	docs, report, err := NewGenerator(NewMarkdownSource("blog", dir, blogLayout)).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "blog-a" {
		t.Errorf("Documents = %v, want [blog-a]", docIDs(docs))
	}
	if report.Failed() != 0 {
		t.Errorf("Failed = %d, want 0", report.Failed())
	}
}

func TestMarkdownSource_MissingDir(t *testing.T) {
	src := NewMarkdownSource("docs", filepath.Join(t.TempDir(), "missing"), blogLayout)
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Expected error for missing directory")
	}
}

const productsYAML = `
items:
  - title: TorScan
    description: Dark web scanner
    category: Threat Intelligence
    features:
      - Credential leak alerts
  - slug: vault
    title: Vault Guard
    description: Secrets management
    url: /custom/vault
    date: 2023-11-02
`

func TestCatalogSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	if err := os.WriteFile(path, []byte(productsYAML), 0644); err != nil {
		t.Fatal(err)
	}

	layout := PageLayout{Type: model.TypeProduct, BaseURL: "https://example.com", URLPrefix: "products"}
	docs, err := NewCatalogSource("products", path, layout).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(docs))
	}

	torscan := docs[0]
	if torscan.ID != "product-torscan" || torscan.URL != "https://example.com/products/torscan" {
		t.Errorf("Derived id/url wrong: %q / %q", torscan.ID, torscan.URL)
	}
	if torscan.Category != "Threat Intelligence" || !strings.Contains(torscan.Content, "Credential leak alerts") {
		t.Errorf("Unexpected document: %+v", torscan)
	}

	vault := docs[1]
	if vault.ID != "product-vault" || vault.URL != "/custom/vault" {
		t.Errorf("Explicit slug/url wrong: %q / %q", vault.ID, vault.URL)
	}
	if vault.Date.Year() != 2023 || vault.Date.Month() != time.November {
		t.Errorf("Date = %v", vault.Date)
	}
}

func TestCatalogSource_SkipsBadRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitepapers.yaml")
	catalog := `
- title: State of Ransomware
  date: 2025-02-11
- title: Broken Paper
  date: someday
- title: Zero Trust Guide
`
	if err := os.WriteFile(path, []byte(catalog), 0644); err != nil {
		t.Fatal(err)
	}

	layout := PageLayout{Type: model.TypeWhitepaper, URLPrefix: "/whitepapers"}
	docs, err := NewCatalogSource("whitepapers", path, layout).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	expected := []string{"whitepaper-state-of-ransomware", "whitepaper-zero-trust-guide"}
	if got := docIDs(docs); !reflect.DeepEqual(got, expected) {
		t.Errorf("Documents = %v, want %v", got, expected)
	}
}

func TestParseCatalog_ListForm(t *testing.T) {
	records, err := ParseCatalog([]byte("- title: One\n- title: Two\n"))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}
	if len(records) != 2 || records[1].Title != "Two" {
		t.Errorf("Records = %+v", records)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	for _, input := range []string{"just a string", "items: [unclosed", "items:\n  - title: [1, 2]\n"} {
		if _, err := ParseCatalog([]byte(input)); err == nil {
			t.Errorf("ParseCatalog(%q) expected error", input)
		}
	}
	if records, err := ParseCatalog(nil); err != nil || len(records) != 0 {
		t.Errorf("Empty catalog = %v, %v", records, err)
	}
}

// fakeDocsClient serves files from memory
type fakeDocsClient struct {
	files   map[string]string
	listErr error
}

func (f *fakeDocsClient) ListFiles(ctx context.Context, project, ref, dir, ext string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var paths []string
	for p := range f.files {
		if strings.HasPrefix(p, dir+"/") && strings.HasSuffix(p, ext) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (f *fakeDocsClient) FetchFiles(ctx context.Context, project, ref string, paths []string) ([]gitlab.File, error) {
	out := make([]gitlab.File, len(paths))
	for i, p := range paths {
		out[i] = gitlab.File{Path: p, Content: []byte(f.files[p])}
	}
	return out, nil
}

func (f *fakeDocsClient) TestConnection(ctx context.Context) error { return nil }

func TestGitLabSource(t *testing.T) {
	client := &fakeDocsClient{files: map[string]string{
		"docs/api/auth.md": "---\ntitle: Authentication\n---\nUse API tokens.",
		"docs/install.md":  "# Installation\n\nRun the installer.",
		"docs/draft.md":    "---\ntitle: Draft\ndraft: true\n---\n",
		"other/ignored.md": "# Ignored",
	}}

	layout := PageLayout{Type: model.TypeDocs, URLPrefix: "/docs"}
	src := NewGitLabSource("docs", client, "web/docs", "main", "/docs/", layout)

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := docIDs(docs); !reflect.DeepEqual(got, []string{"docs-api-auth", "docs-install"}) {
		t.Errorf("Documents = %v", got)
	}
	if docs[0].URL != "/docs/api/auth" || docs[1].Title != "Installation" {
		t.Errorf("Unexpected documents: %+v", docs)
	}
}

func TestGitLabSource_SkipsBadPage(t *testing.T) {
	client := &fakeDocsClient{files: map[string]string{
		"docs/good.md": "---\ntitle: Good\n---\nIndexed.",
		"docs/bad.md":  "---\ntitle: Bad\ndate: yesterday\n---\n",
	}}
	src := NewGitLabSource("docs", client, "web/docs", "main", "docs", PageLayout{Type: model.TypeDocs})

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := docIDs(docs); !reflect.DeepEqual(got, []string{"docs-good"}) {
		t.Errorf("Documents = %v, want [docs-good]", got)
	}
}

func TestGitLabSource_Error(t *testing.T) {
	client := &fakeDocsClient{listErr: errors.New("401 Unauthorized")}
	src := NewGitLabSource("docs", client, "web/docs", "main", "docs", PageLayout{Type: model.TypeDocs})

	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Expected error from failing client")
	}
}

func TestSitePages(t *testing.T) {
	pages := SitePages("https://example.com/")
	if len(pages) == 0 {
		t.Fatal("Expected site pages")
	}
	if pages[0].ID != "page-index" || pages[0].URL != "https://example.com/" {
		t.Errorf("Home page = %q / %q", pages[0].ID, pages[0].URL)
	}
	for _, p := range pages {
		if err := p.Validate(); err != nil {
			t.Errorf("Page %s invalid: %v", p.ID, err)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"TorScan", "torscan"},
		{"Vault Guard 2.0", "vault-guard-2-0"},
		{"  --Zero   Trust--  ", "zero-trust"},
		{"api/auth", "api-auth"},
		{"Безопасность данных", "безопасность-данных"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, prefix, slug, want string
	}{
		{"https://example.com", "/blog/", "/post", "https://example.com/blog/post"},
		{"https://example.com/", "", "", "https://example.com/"},
		{"", "docs", "a/b", "/docs/a/b"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.prefix, tt.slug); got != tt.want {
			t.Errorf("JoinURL(%q, %q, %q) = %q, want %q", tt.base, tt.prefix, tt.slug, got, tt.want)
		}
	}
}
