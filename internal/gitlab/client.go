// Package gitlab fetches documentation trees stored in a GitLab repository
package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/igusev/sitesearch/internal/logger"
	"github.com/xanzy/go-gitlab"
)

// File is one repository file with its raw content
type File struct {
	Path    string
	Content []byte
}

// DocsClient defines the GitLab operations needed to load a docs tree
// This interface enables mocking in tests while maintaining production functionality
type DocsClient interface {
	ListFiles(ctx context.Context, project, ref, dir, ext string) ([]string, error)
	FetchFiles(ctx context.Context, project, ref string, paths []string) ([]File, error)
	TestConnection(ctx context.Context) error
}

// Client wraps the GitLab API client and implements DocsClient
type Client struct {
	client *gitlab.Client
}

// maxConcurrent limits parallel raw-file requests
const maxConcurrent = 10

// New creates a new GitLab client with timeout
func New(url, token string, timeout time.Duration) (*Client, error) {
	httpClient := &http.Client{
		Timeout: timeout,
	}

	client, err := gitlab.NewClient(
		token,
		gitlab.WithBaseURL(url),
		gitlab.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &Client{client: client}, nil
}

// ListFiles returns the paths of every blob under dir (recursively) whose
// name ends in ext, sorted by path. An empty ext keeps every blob.
func (c *Client) ListFiles(ctx context.Context, project, ref, dir, ext string) ([]string, error) {
	opt := &gitlab.ListTreeOptions{
		ListOptions: gitlab.ListOptions{
			PerPage: 100,
			Page:    1,
		},
		Recursive: gitlab.Ptr(true),
	}
	if dir != "" {
		opt.Path = gitlab.Ptr(strings.Trim(dir, "/"))
	}
	if ref != "" {
		opt.Ref = gitlab.Ptr(ref)
	}

	var paths []string
	for {
		nodes, resp, err := c.client.Repositories.ListTree(project, opt, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list repository tree (page %d): %w", opt.Page, err)
		}

		for _, node := range nodes {
			if node.Type != "blob" {
				continue
			}
			if ext != "" && !strings.HasSuffix(strings.ToLower(node.Path), ext) {
				continue
			}
			paths = append(paths, node.Path)
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		logger.Debug("Repository tree: fetching page %d", resp.NextPage)
		opt.Page = resp.NextPage
	}

	sort.Strings(paths)
	logger.Debug("Found %d files under %q in %s", len(paths), dir, project)
	return paths, nil
}

// FetchFiles downloads the raw content of paths in parallel
// The result keeps the order of paths; the first failure aborts the fetch.
func (c *Client) FetchFiles(ctx context.Context, project, ref string, paths []string) ([]File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	opt := &gitlab.GetRawFileOptions{}
	if ref != "" {
		opt.Ref = gitlab.Ptr(ref)
	}

	type fileResult struct {
		index   int
		content []byte
		err     error
	}

	results := make(chan fileResult, len(paths))
	semaphore := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var completed int32
	startTime := time.Now()

	for i, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			content, _, err := c.client.RepositoryFiles.GetRawFile(project, path, opt, gitlab.WithContext(ctx))
			if err != nil {
				results <- fileResult{index: index, err: fmt.Errorf("failed to fetch %s: %w", path, err)}
				return
			}
			results <- fileResult{index: index, content: content}

			done := atomic.AddInt32(&completed, 1)
			logger.Debug("Fetched file %d/%d (%d%%)", done, len(paths), (int(done)*100)/len(paths))
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	files := make([]File, len(paths))
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		files[r.index] = File{Path: paths[r.index], Content: r.content}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	logger.Debug("Fetched %d files in %v", len(files), time.Since(startTime))
	return files, nil
}

// TestConnection tests the connection to GitLab by fetching current user
func (c *Client) TestConnection(ctx context.Context) error {
	_, _, err := c.client.Users.CurrentUser(gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to connect to GitLab: %w", err)
	}
	return nil
}
