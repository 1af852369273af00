package content

import (
	"context"
	"strings"

	"github.com/igusev/sitesearch/internal/gitlab"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/model"
)

// GitLabSource loads markdown pages stored in a GitLab repository
type GitLabSource struct {
	name    string
	client  gitlab.DocsClient
	project string
	ref     string
	dir     string
	layout  PageLayout
}

// NewGitLabSource creates a source for the markdown files under dir at ref
func NewGitLabSource(name string, client gitlab.DocsClient, project, ref, dir string, layout PageLayout) *GitLabSource {
	return &GitLabSource{
		name:    name,
		client:  client,
		project: project,
		ref:     ref,
		dir:     strings.Trim(dir, "/"),
		layout:  layout,
	}
}

// Name implements Source
func (s *GitLabSource) Name() string {
	return s.name
}

// Load implements Source
func (s *GitLabSource) Load(ctx context.Context) ([]model.SearchDocument, error) {
	paths, err := s.client.ListFiles(ctx, s.project, s.ref, s.dir, ".md")
	if err != nil {
		return nil, err
	}

	files, err := s.client.FetchFiles(ctx, s.project, s.ref, paths)
	if err != nil {
		return nil, err
	}

	docs := make([]model.SearchDocument, 0, len(files))
	for _, f := range files {
		rel := f.Path
		if s.dir != "" {
			rel = strings.TrimPrefix(rel, s.dir+"/")
		}

		doc, ok, err := ParsePage(s.layout, rel, f.Content)
		if err != nil {
			logger.Warn("Skipping page in %s (%s@%s): %v", s.name, s.project, s.ref, err)
			continue
		}
		if ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
