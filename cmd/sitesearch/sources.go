package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/igusev/sitesearch/internal/config"
	"github.com/igusev/sitesearch/internal/content"
	"github.com/igusev/sitesearch/internal/gitlab"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/model"
)

// conventionalSource is one entry of the content.dir layout
type conventionalSource struct {
	name      string
	path      string // relative to content.dir
	catalog   bool   // YAML catalog file rather than a markdown directory
	docType   model.DocumentType
	urlPrefix string
}

// conventionalLayout lists what content.dir may hold, in registration order
var conventionalLayout = []conventionalSource{
	{name: "products", path: "products.yaml", catalog: true, docType: model.TypeProduct, urlPrefix: "/products"},
	{name: "whitepapers", path: "whitepapers.yaml", catalog: true, docType: model.TypeWhitepaper, urlPrefix: "/whitepapers"},
	{name: "blog", path: "blog", docType: model.TypeBlog, urlPrefix: "/blog"},
	{name: "docs", path: "docs", docType: model.TypeDocs, urlPrefix: "/docs"},
	{name: "learn", path: "learn", docType: model.TypeLearn, urlPrefix: "/learn"},
}

// buildGenerator registers every configured content source
// Order: the content.dir layout, configured catalogs, configured markdown
// trees, the GitLab docs tree, then the static site pages.
func buildGenerator(cfg *config.Config) (*content.Generator, error) {
	gen := content.NewGenerator()
	base := cfg.Site.BaseURL

	if dir := cfg.Content.Dir; dir != "" {
		for _, cs := range conventionalLayout {
			path := filepath.Join(dir, cs.path)
			if _, err := os.Stat(path); err != nil {
				logger.Debug("Skipping %s: %v", cs.name, err)
				continue
			}
			layout := content.PageLayout{Type: cs.docType, BaseURL: base, URLPrefix: cs.urlPrefix}
			if cs.catalog {
				gen.Add(content.NewCatalogSource(cs.name, path, layout))
			} else {
				gen.Add(content.NewMarkdownSource(cs.name, path, layout))
			}
		}
	}

	for i, col := range cfg.Content.Catalogs {
		layout, err := collectionLayout(col, base)
		if err != nil {
			return nil, fmt.Errorf("content.catalogs[%d]: %w", i, err)
		}
		gen.Add(content.NewCatalogSource(collectionName(col, "catalog", i), col.Path, layout))
	}

	for i, col := range cfg.Content.Markdown {
		layout, err := collectionLayout(col, base)
		if err != nil {
			return nil, fmt.Errorf("content.markdown[%d]: %w", i, err)
		}
		gen.Add(content.NewMarkdownSource(collectionName(col, "markdown", i), col.Path, layout))
	}

	if gl := cfg.Content.GitLab; gl.Enabled() {
		docType, err := model.ParseDocumentType(gl.Type)
		if err != nil {
			return nil, fmt.Errorf("content.gitlab: %w", err)
		}
		client, err := gitlab.New(gl.URL, gl.Token, gl.GetTimeout())
		if err != nil {
			return nil, fmt.Errorf("content.gitlab: %w", err)
		}
		layout := content.PageLayout{Type: docType, BaseURL: base, URLPrefix: gl.URLPrefix}
		gen.Add(content.NewGitLabSource("gitlab", client, gl.Project, gl.Ref, gl.Path, layout))
	}

	if cfg.Content.StaticPages {
		gen.Add(content.NewStaticSource("pages", content.SitePages(base)))
	}

	return gen, nil
}

func collectionLayout(col config.CollectionConfig, base string) (content.PageLayout, error) {
	docType, err := model.ParseDocumentType(col.Type)
	if err != nil {
		return content.PageLayout{}, err
	}
	return content.PageLayout{
		Type:      docType,
		BaseURL:   base,
		URLPrefix: col.URLPrefix,
		Category:  col.Category,
	}, nil
}

func collectionName(col config.CollectionConfig, kind string, i int) string {
	if col.Name != "" {
		return col.Name
	}
	return fmt.Sprintf("%s-%d", kind, i+1)
}
