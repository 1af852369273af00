package search

import (
	"sort"

	"github.com/igusev/sitesearch/internal/model"
)

// SortMode selects the ordering of a result list
type SortMode int

const (
	// SortRelevance keeps the query engine order
	SortRelevance SortMode = iota
	// SortDate orders by date, newest first, undated documents last
	SortDate
)

// String returns the label shown in the results header
func (s SortMode) String() string {
	if s == SortDate {
		return "Most recent"
	}
	return "Relevance"
}

// Toggle switches between relevance and date ordering
func (s SortMode) Toggle() SortMode {
	if s == SortDate {
		return SortRelevance
	}
	return SortDate
}

// DefaultPerPage is the number of results on one page
const DefaultPerPage = 10

// CountByType counts results per document type (the live filter counts)
func CountByType(results []model.SearchDocument) map[model.DocumentType]int {
	counts := make(map[model.DocumentType]int)
	for _, r := range results {
		counts[r.Type]++
	}
	return counts
}

// FilterByType keeps results of type t; an empty t keeps everything
func FilterByType(results []model.SearchDocument, t model.DocumentType) []model.SearchDocument {
	if t == "" {
		return results
	}
	out := make([]model.SearchDocument, 0, len(results))
	for _, r := range results {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// SortResults returns a sorted copy of results
// Relevance order is the incoming order; date order is stable for equal dates.
func SortResults(results []model.SearchDocument, mode SortMode) []model.SearchDocument {
	out := make([]model.SearchDocument, len(results))
	copy(out, results)
	if mode != SortDate {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.Date.After(b.Date)
	})
	return out
}

// Page is one page of a paginated result list
type Page struct {
	Items      []model.SearchDocument
	Number     int // 1-based, clamped into [1, TotalPages]
	TotalPages int // 0 when there are no results
	Total      int
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// Paginate slices results into the requested page
func Paginate(results []model.SearchDocument, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total := len(results)
	totalPages := (total + perPage - 1) / perPage

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      results[start:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}
}

// PageNumbers returns up to window page numbers centred on current
func PageNumbers(current, totalPages, window int) []int {
	if totalPages <= 0 || window <= 0 {
		return nil
	}
	if window > totalPages {
		window = totalPages
	}

	start := current - window/2
	if start < 1 {
		start = 1
	}
	if start+window-1 > totalPages {
		start = totalPages - window + 1
	}

	pages := make([]int, window)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
