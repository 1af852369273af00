package content

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"

	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/model"
)

// descriptionRunes is the length of a description derived from the body
const descriptionRunes = 160

// FrontMatter is the YAML header of a markdown page
type FrontMatter struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Date        string `yaml:"date"`
	Slug        string `yaml:"slug"`
	URL         string `yaml:"url"`
	Draft       bool   `yaml:"draft"`
}

// SplitFrontMatter separates a leading "---" YAML block from the markdown body
// Files without front matter return an empty FrontMatter and the whole input.
func SplitFrontMatter(data []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter

	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return fm, data, nil
	}

	rest := normalized[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return fm, nil, fmt.Errorf("unterminated front matter")
	}

	header := rest[:end]
	body := rest[end+len("\n---"):]
	// Drop the remainder of the closing delimiter line
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = nil
	}

	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, nil, fmt.Errorf("invalid front matter: %w", err)
	}
	return fm, body, nil
}

// ParseDate accepts the date formats used in front matter and catalogs
// An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// CleanMarkdown converts markdown into plain text
// Headings, paragraphs, list items and link text are kept; code blocks,
// images and raw HTML are removed.
func CleanMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse([]byte(md), p)

	var buf bytes.Buffer
	ast.Walk(doc, &textExtractor{buf: &buf})

	// One line per block, no blank lines
	lines := strings.Split(buf.String(), "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// textExtractor is an AST visitor that collects plain text
type textExtractor struct {
	buf *bytes.Buffer
}

// Visit implements ast.NodeVisitor
func (te *textExtractor) Visit(node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.CodeBlock, *ast.Image, *ast.HTMLBlock, *ast.HTMLSpan:
		return ast.SkipChildren

	case *ast.Text:
		if entering {
			te.buf.Write(n.Literal)
		}

	case *ast.Code:
		// Inline code stays searchable
		if entering {
			te.buf.Write(n.Literal)
		}

	case *ast.Softbreak, *ast.Hardbreak:
		te.buf.WriteByte(' ')

	case *ast.Link, *ast.TableCell:
		if !entering {
			te.buf.WriteByte(' ')
		}

	case *ast.Heading, *ast.Paragraph, *ast.ListItem, *ast.TableRow, *ast.BlockQuote:
		if !entering {
			te.buf.WriteByte('\n')
		}
	}

	return ast.GoToNext
}

// firstHeading returns the text of the first heading in md, if any
func firstHeading(md []byte) string {
	doc := markdown.Parse(md, parser.NewWithExtensions(parser.CommonExtensions))

	var title string
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		h, ok := node.(*ast.Heading)
		if !ok || !entering {
			return ast.GoToNext
		}
		var buf bytes.Buffer
		ast.Walk(h, &textExtractor{buf: &buf})
		title = strings.Join(strings.Fields(buf.String()), " ")
		return ast.Terminate
	})
	return title
}

// excerpt returns the first n runes of text, cut at a word boundary
func excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// PageLayout describes how a markdown collection maps onto documents
type PageLayout struct {
	Type      model.DocumentType
	BaseURL   string // site origin, may be empty for relative URLs
	URLPrefix string // e.g. "/blog"
	Category  string // default category when the front matter has none
}

// ParsePage builds a document from one markdown file
// rel is the path relative to the collection root, using forward slashes.
// ok is false for drafts.
func ParsePage(layout PageLayout, rel string, data []byte) (doc model.SearchDocument, ok bool, err error) {
	fm, body, err := SplitFrontMatter(data)
	if err != nil {
		return doc, false, fmt.Errorf("%s: %w", rel, err)
	}
	if fm.Draft {
		return doc, false, nil
	}

	date, err := ParseDate(fm.Date)
	if err != nil {
		return doc, false, fmt.Errorf("%s: %w", rel, err)
	}

	slug := strings.Trim(fm.Slug, "/")
	if slug == "" {
		slug = strings.TrimSuffix(rel, path.Ext(rel))
		slug = strings.TrimSuffix(slug, "/index")
		if slug == "index" {
			slug = ""
		}
	}

	text := CleanMarkdown(string(body))

	title := fm.Title
	if title == "" {
		title = firstHeading(body)
	}
	description := fm.Description
	if description == "" {
		description = excerpt(text, descriptionRunes)
	}
	category := fm.Category
	if category == "" {
		category = layout.Category
	}

	id := fm.ID
	if id == "" {
		id = DocumentID(layout.Type, slug)
	}
	url := fm.URL
	if url == "" {
		url = JoinURL(layout.BaseURL, layout.URLPrefix, slug)
	}

	return model.SearchDocument{
		ID:          id,
		Type:        layout.Type,
		Title:       title,
		Description: description,
		Content:     text,
		URL:         url,
		Category:    category,
		Date:        date,
	}, true, nil
}

// MarkdownSource loads a directory tree of markdown pages
type MarkdownSource struct {
	name   string
	dir    string
	layout PageLayout
}

// NewMarkdownSource creates a source reading every .md file under dir
func NewMarkdownSource(name, dir string, layout PageLayout) *MarkdownSource {
	return &MarkdownSource{name: name, dir: dir, layout: layout}
}

// Name implements Source
func (s *MarkdownSource) Name() string {
	return s.name
}

// Load implements Source; files are read in lexical path order
// Pages that fail to parse are logged and skipped; read errors fail the source.
func (s *MarkdownSource) Load(ctx context.Context) ([]model.SearchDocument, error) {
	var docs []model.SearchDocument

	err := filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}

		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(p) // #nosec G304 -- walking the configured content directory
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}

		doc, ok, err := ParsePage(s.layout, filepath.ToSlash(rel), data)
		if err != nil {
			// One broken page must not hide the rest of the collection
			logger.Warn("Skipping page in %s: %v", s.name, err)
			return nil
		}
		if ok {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load markdown from %s: %w", s.dir, err)
	}

	return docs, nil
}
