// Package content turns the site's content sources into search documents
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/model"
	"golang.org/x/sync/errgroup"
)

// ErrNoDocuments is returned by Generate when every source failed to load
var ErrNoDocuments = errors.New("no content source could be loaded")

// maxParallelSources bounds concurrent source loads
const maxParallelSources = 4

// Source produces documents from one content collection
type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.SearchDocument, error)
}

// SourceReport describes how one source fared during generation
type SourceReport struct {
	Name     string
	Loaded   int           // documents returned by the source
	Kept     int           // documents that made it into the output
	Err      error         // load error; the source was skipped
	Duration time.Duration // time spent in Load
}

// Report summarises a generation run
type Report struct {
	Sources    []SourceReport // in registration order
	Invalid    int            // dropped by validation
	Duplicates int            // dropped because the id was already taken
	Total      int            // documents emitted
}

// Failed returns the number of sources that could not be loaded
func (r Report) Failed() int {
	n := 0
	for _, s := range r.Sources {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// Generator gathers documents from all registered sources
type Generator struct {
	sources []Source
}

// NewGenerator creates a Generator over sources, kept in the given order
func NewGenerator(sources ...Source) *Generator {
	return &Generator{sources: sources}
}

// Add registers another source after the existing ones
func (g *Generator) Add(src Source) {
	g.sources = append(g.sources, src)
}

// Sources returns the registered source names in order
func (g *Generator) Sources() []string {
	names := make([]string, len(g.sources))
	for i, s := range g.sources {
		names[i] = s.Name()
	}
	return names
}

// Generate loads every source concurrently and merges the results
// Output follows source registration order, then each source's own order.
// A failing source is logged and skipped; ErrNoDocuments is returned only when
// all sources failed. Markup is stripped from every text field, invalid
// documents are dropped, and for duplicate ids the first document wins.
func (g *Generator) Generate(ctx context.Context) ([]model.SearchDocument, Report, error) {
	report := Report{Sources: make([]SourceReport, len(g.sources))}
	loaded := make([][]model.SearchDocument, len(g.sources))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelSources)

	for i, src := range g.sources {
		eg.Go(func() error {
			start := time.Now()
			docs, err := src.Load(egCtx)
			report.Sources[i] = SourceReport{
				Name:     src.Name(),
				Loaded:   len(docs),
				Err:      err,
				Duration: time.Since(start),
			}
			if err != nil {
				// Partial failure: the other sources still build the index
				logger.Warn("Skipping content source %s: %v", src.Name(), err)
				return nil
			}
			logger.Debug("Loaded %d documents from %s in %v", len(docs), src.Name(), time.Since(start))
			loaded[i] = docs
			return nil
		})
	}
	_ = eg.Wait() //nolint:errcheck // Workers never return errors

	if err := ctx.Err(); err != nil {
		return nil, report, fmt.Errorf("content generation cancelled: %w", err)
	}

	if len(g.sources) > 0 && report.Failed() == len(g.sources) {
		return nil, report, ErrNoDocuments
	}

	seen := make(map[string]string)
	out := make([]model.SearchDocument, 0)
	for i, docs := range loaded {
		srcName := report.Sources[i].Name
		for _, doc := range docs {
			doc = Normalize(doc)
			if err := doc.Validate(); err != nil {
				report.Invalid++
				logger.Warn("Dropping document from %s: %v", srcName, err)
				continue
			}
			if owner, dup := seen[doc.ID]; dup {
				report.Duplicates++
				logger.Warn("Dropping duplicate document %q from %s (already provided by %s)", doc.ID, srcName, owner)
				continue
			}
			seen[doc.ID] = srcName
			out = append(out, doc)
			report.Sources[i].Kept++
		}
	}

	report.Total = len(out)
	logger.Debug("Generated %d documents from %d sources (%d failed, %d invalid, %d duplicates)",
		report.Total, len(g.sources), report.Failed(), report.Invalid, report.Duplicates)
	return out, report, nil
}
