package content

import (
	"strings"
	"testing"
	"time"

	"github.com/igusev/sitesearch/internal/model"
)

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "h1 heading", input: "# Main Title", expected: "Main Title"},
		{name: "multiple headings", input: "# Title\n\n## Subtitle\n\nContent", expected: "Title\nSubtitle\nContent"},
		{name: "paragraphs with extra newlines", input: "First.\n\n\n\nSecond.", expected: "First.\nSecond."},
		{name: "inline code kept", input: "Call `scan --deep` first", expected: "Call scan --deep first"},
		{name: "link text without url", input: "[Click here](https://example.com) now", expected: "Click here now"},
		{name: "image removed", input: "![diagram](arch.png) Architecture", expected: "Architecture"},
		{name: "list items", input: "- one\n- two\n- three", expected: "one\ntwo\nthree"},
		{name: "emphasis", input: "**bold** and *italic*", expected: "bold and italic"},
		{name: "html block removed", input: "<div>hidden</div>\n\nVisible", expected: "Visible"},
		{name: "cyrillic", input: "# Заголовок\n\nТекст статьи", expected: "Заголовок\nТекст статьи"},
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "  \n\t\n ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := CleanMarkdown(tt.input); result != tt.expected {
				t.Errorf("CleanMarkdown() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanMarkdown_CodeBlocks(t *testing.T) {
	input := "# Title\n\nText before code\n\n```go\nfunc secret() {}\n```\n\n    indented code\n\nText after code"
	result := CleanMarkdown(input)

	for _, want := range []string{"Title", "Text before code", "Text after code"} {
		if !strings.Contains(result, want) {
			t.Errorf("Result should contain %q, got %q", want, result)
		}
	}
	for _, unwanted := range []string{"secret", "indented code"} {
		if strings.Contains(result, unwanted) {
			t.Errorf("Result should not contain code %q, got %q", unwanted, result)
		}
	}
}

func TestSplitFrontMatter(t *testing.T) {
	input := "---\ntitle: Hello\ndescription: First post\ncategory: News\ndate: 2024-03-01\nslug: hello\n---\n# Body\n\nText\n"

	fm, body, err := SplitFrontMatter([]byte(input))
	if err != nil {
		t.Fatalf("SplitFrontMatter failed: %v", err)
	}

	if fm.Title != "Hello" || fm.Description != "First post" || fm.Category != "News" || fm.Slug != "hello" {
		t.Errorf("Unexpected front matter: %+v", fm)
	}
	if fm.Date != "2024-03-01" {
		t.Errorf("Date = %q", fm.Date)
	}
	if string(body) != "# Body\n\nText\n" {
		t.Errorf("Body = %q", body)
	}
}

func TestSplitFrontMatter_CRLF(t *testing.T) {
	fm, body, err := SplitFrontMatter([]byte("---\r\ntitle: Windows\r\n---\r\nBody\r\n"))
	if err != nil {
		t.Fatalf("SplitFrontMatter failed: %v", err)
	}
	if fm.Title != "Windows" || strings.TrimSpace(string(body)) != "Body" {
		t.Errorf("Got %+v / %q", fm, body)
	}
}

func TestSplitFrontMatter_None(t *testing.T) {
	input := []byte("# Just markdown\n\n---\n\nAfter a rule")
	fm, body, err := SplitFrontMatter(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fm != (FrontMatter{}) || string(body) != string(input) {
		t.Errorf("File without front matter should pass through, got %+v / %q", fm, body)
	}
}

func TestSplitFrontMatter_Errors(t *testing.T) {
	tests := map[string]string{
		"unterminated": "---\ntitle: Hello\n\n# Body",
		"invalid yaml": "---\ntitle: [unclosed\n---\nBody",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, _, err := SplitFrontMatter([]byte(input)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "", want: time.Time{}},
		{input: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2024-03-01T10:30:00Z", want: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{input: "2024-03-01 10:30:00", want: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{input: "March 1st", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil || !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}
}

var blogLayout = PageLayout{
	Type:      model.TypeBlog,
	BaseURL:   "https://example.com",
	URLPrefix: "/blog",
}

func TestParsePage(t *testing.T) {
	data := []byte("---\ntitle: Ransomware Trends\ncategory: Threats\ndate: 2024-05-10\n---\nRansomware groups are *changing* tactics.\n\n```sh\nrm -rf /\n```\n")

	doc, ok, err := ParsePage(blogLayout, "2024/ransomware-trends.md", data)
	if err != nil || !ok {
		t.Fatalf("ParsePage = ok %v, err %v", ok, err)
	}

	if doc.ID != "blog-2024-ransomware-trends" {
		t.Errorf("ID = %q", doc.ID)
	}
	if doc.URL != "https://example.com/blog/2024/ransomware-trends" {
		t.Errorf("URL = %q", doc.URL)
	}
	if doc.Type != model.TypeBlog || doc.Title != "Ransomware Trends" || doc.Category != "Threats" {
		t.Errorf("Unexpected document: %+v", doc)
	}
	if doc.Content != "Ransomware groups are changing tactics." {
		t.Errorf("Content = %q", doc.Content)
	}
	if doc.Description != doc.Content {
		t.Errorf("Description should fall back to the body excerpt, got %q", doc.Description)
	}
	if !doc.Date.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", doc.Date)
	}
}

func TestParsePage_Fallbacks(t *testing.T) {
	layout := PageLayout{Type: model.TypeDocs, URLPrefix: "/docs", Category: "Documentation"}

	doc, ok, err := ParsePage(layout, "getting-started/index.md", []byte("# Getting Started\n\nInstall the agent."))
	if err != nil || !ok {
		t.Fatalf("ParsePage = ok %v, err %v", ok, err)
	}

	if doc.Title != "Getting Started" {
		t.Errorf("Title should come from the first heading, got %q", doc.Title)
	}
	if doc.URL != "/docs/getting-started" {
		t.Errorf("URL = %q", doc.URL)
	}
	if doc.ID != "docs-getting-started" {
		t.Errorf("ID = %q", doc.ID)
	}
	if doc.Category != "Documentation" {
		t.Errorf("Category should default from layout, got %q", doc.Category)
	}
}

func TestParsePage_ExplicitFields(t *testing.T) {
	data := []byte("---\nid: custom-id\ntitle: T\nurl: /elsewhere\nslug: ignored\n---\nBody")

	doc, _, err := ParsePage(blogLayout, "x.md", data)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if doc.ID != "custom-id" || doc.URL != "/elsewhere" {
		t.Errorf("Explicit id/url should win, got %q / %q", doc.ID, doc.URL)
	}
}

func TestParsePage_Draft(t *testing.T) {
	_, ok, err := ParsePage(blogLayout, "draft.md", []byte("---\ntitle: WIP\ndraft: true\n---\nSoon"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Drafts should be skipped")
	}
}

func TestParsePage_BadDate(t *testing.T) {
	_, _, err := ParsePage(blogLayout, "bad.md", []byte("---\ntitle: T\ndate: someday\n---\nBody"))
	if err == nil || !strings.Contains(err.Error(), "bad.md") {
		t.Errorf("Expected error naming the file, got %v", err)
	}
}

func TestExcerpt(t *testing.T) {
	if got := excerpt("short text", 160); got != "short text" {
		t.Errorf("excerpt = %q", got)
	}

	long := strings.Repeat("word ", 50)
	got := excerpt(long, 20)
	if got != "word word word word…" {
		t.Errorf("excerpt = %q", got)
	}
}
