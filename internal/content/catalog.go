package content

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/model"
)

// CatalogRecord is one entry of a YAML catalog (products, white papers)
type CatalogRecord struct {
	ID          string   `yaml:"id"`
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Content     string   `yaml:"content"`
	Features    []string `yaml:"features"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
	URL         string   `yaml:"url"`
	Date        string   `yaml:"date"`
}

// catalogFile is the mapping form of a catalog: a top-level "items" list
type catalogFile struct {
	Items []CatalogRecord `yaml:"items"`
}

// ParseCatalog decodes a catalog given either as a list or as {items: [...]}
func ParseCatalog(data []byte) ([]CatalogRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var records []CatalogRecord
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		return records, nil
	case yaml.MappingNode:
		var file catalogFile
		if err := root.Decode(&file); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		return file.Items, nil
	default:
		return nil, fmt.Errorf("invalid catalog: expected a list or an items mapping")
	}
}

// Document converts a record using layout for type, URL and default category
func (r CatalogRecord) Document(layout PageLayout) (model.SearchDocument, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return model.SearchDocument{}, err
	}

	slug := r.Slug
	if slug == "" {
		slug = Slugify(r.Title)
	}
	id := r.ID
	if id == "" {
		id = DocumentID(layout.Type, slug)
	}
	url := r.URL
	if url == "" {
		url = JoinURL(layout.BaseURL, layout.URLPrefix, slug)
	}
	category := r.Category
	if category == "" {
		category = layout.Category
	}

	body := []string{r.Content}
	body = append(body, r.Features...)
	body = append(body, r.Tags...)

	return model.SearchDocument{
		ID:          id,
		Type:        layout.Type,
		Title:       r.Title,
		Description: r.Description,
		Content:     strings.TrimSpace(strings.Join(body, "\n")),
		URL:         url,
		Category:    category,
		Date:        date,
	}, nil
}

// CatalogSource loads documents from a YAML catalog file
type CatalogSource struct {
	name   string
	path   string
	layout PageLayout
}

// NewCatalogSource creates a source for the catalog at path
func NewCatalogSource(name, path string, layout PageLayout) *CatalogSource {
	return &CatalogSource{name: name, path: path, layout: layout}
}

// Name implements Source
func (s *CatalogSource) Name() string {
	return s.name
}

// Load implements Source
func (s *CatalogSource) Load(ctx context.Context) ([]model.SearchDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path) // #nosec G304 -- configured catalog path
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	records, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	docs := make([]model.SearchDocument, 0, len(records))
	for i, r := range records {
		doc, err := r.Document(s.layout)
		if err != nil {
			logger.Warn("Skipping record %d of %s: %v", i+1, s.path, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
