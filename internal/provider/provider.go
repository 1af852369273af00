// Package provider owns the search index for a session and the recent-search list
package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/igusev/sitesearch/internal/content"
	"github.com/igusev/sitesearch/internal/history"
	"github.com/igusev/sitesearch/internal/index"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/model"
	"github.com/igusev/sitesearch/internal/search"
)

// DefaultPopularSearches is the curated list used when none is configured
var DefaultPopularSearches = []string{
	"dark web monitoring",
	"penetration testing",
	"compliance",
	"API security",
	"ransomware",
	"zero trust",
}

// Generator produces the documents to index
// *content.Generator implements it.
type Generator interface {
	Generate(ctx context.Context) ([]model.SearchDocument, content.Report, error)
}

// Options configures a Provider
type Options struct {
	Generator    Generator
	History      *history.History // nil keeps recent searches in memory only
	Popular      []string         // nil uses DefaultPopularSearches
	BuildTimeout time.Duration    // 0 means the build may take as long as it needs
}

// Provider builds the index once, asynchronously, and serves queries against it
// Until the build has finished every query returns an empty result.
type Provider struct {
	generator Generator
	history   *history.History
	popular   []string
	timeout   time.Duration

	once     sync.Once
	done     chan struct{}
	idx      atomic.Pointer[index.Index]
	indexing atomic.Bool

	mu      sync.RWMutex
	err     error
	report  content.Report
	builtIn time.Duration
}

// New creates a Provider; call Start to build the index
func New(opts Options) *Provider {
	hist := opts.History
	if hist == nil {
		hist = history.New(nil)
	}

	popular := opts.Popular
	if popular == nil {
		popular = DefaultPopularSearches
	}
	popular = cleanTerms(popular)

	p := &Provider{
		generator: opts.Generator,
		history:   hist,
		popular:   popular,
		timeout:   opts.BuildTimeout,
		done:      make(chan struct{}),
	}
	p.indexing.Store(true)
	return p
}

// Start launches the index build; only the first call has any effect
func (p *Provider) Start(ctx context.Context) {
	p.once.Do(func() {
		go p.build(ctx)
	})
}

func (p *Provider) build(ctx context.Context) {
	defer close(p.done)
	defer p.indexing.Store(false)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	idx, report, err := p.buildIndex(ctx)

	p.mu.Lock()
	p.report = report
	p.err = err
	p.builtIn = time.Since(start)
	p.mu.Unlock()

	if err != nil {
		logger.Error("Search index unavailable: %v", err)
		return
	}

	// Published only once complete
	p.idx.Store(idx)
	logger.Debug("Search index ready: %d documents, %d terms in %v", idx.Len(), idx.TermCount(), time.Since(start))
}

func (p *Provider) buildIndex(ctx context.Context) (*index.Index, content.Report, error) {
	if p.generator == nil {
		return nil, content.Report{}, fmt.Errorf("no document generator configured")
	}

	docs, report, err := p.generator.Generate(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("failed to generate documents: %w", err)
	}

	idx, err := index.Build(docs)
	if err != nil {
		return nil, report, fmt.Errorf("failed to build index: %w", err)
	}
	return idx, report, nil
}

// Done is closed once the build has finished or failed
func (p *Provider) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the build settles or ctx ends, returning the build error
func (p *Provider) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsIndexing reports whether the index is still being built
// It is true from construction until the build completes or fails.
func (p *Provider) IsIndexing() bool {
	return p.indexing.Load()
}

// Err returns the build error, if any
func (p *Provider) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Report returns the document generation report of the finished build
func (p *Provider) Report() content.Report {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.report
}

// BuildDuration returns how long the build took; zero while indexing
func (p *Provider) BuildDuration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.builtIn
}

// Index returns the built index, or nil while indexing or after a failure
func (p *Provider) Index() *index.Index {
	return p.idx.Load()
}

// Search runs query against the index
// It returns an empty result while the index is not built or for a blank query.
func (p *Provider) Search(query string, opts search.Options) []model.SearchDocument {
	idx := p.idx.Load()
	if idx == nil || strings.TrimSpace(query) == "" {
		return []model.SearchDocument{}
	}
	return search.Search(idx, query, opts)
}

// AddRecentSearch records query as the most recent search
func (p *Provider) AddRecentSearch(query string) {
	p.history.Add(query)
}

// ClearRecentSearches forgets all recent searches
func (p *Provider) ClearRecentSearches() {
	p.history.Clear()
}

// RecentSearches returns recent searches, most recent first
func (p *Provider) RecentSearches() []string {
	return p.history.Entries()
}

// PopularSearches returns the curated popular search terms
func (p *Provider) PopularSearches() []string {
	out := make([]string, len(p.popular))
	copy(out, p.popular)
	return out
}

// History exposes the recent-search store, e.g. for async loading
func (p *Provider) History() *history.History {
	return p.history
}

func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
