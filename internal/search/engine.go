// Package search ranks indexed documents against free-text queries
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/igusev/sitesearch/internal/index"
	"github.com/igusev/sitesearch/internal/model"
)

const (
	// DefaultLimit is used when Options.Limit is zero or negative
	DefaultLimit = 20
	// MaxLimit caps any requested limit
	MaxLimit = 100
)

// Match multipliers by how an index term relates to a query term
const (
	exactMultiplier  = 1.0
	prefixMultiplier = 0.7
	infixMultiplier  = 0.5
	fuzzyMultiplier  = 0.4 // reduced by 0.1 per edit

	minPrefixRunes = 2
	minInfixRunes  = 3
	minFuzzyRunes  = 4
)

// Options controls a single query
type Options struct {
	Limit int                // max results; <= 0 means DefaultLimit
	Type  model.DocumentType // restrict to one type; empty means all types
	Fuzzy bool               // also match terms within a small edit distance
}

// DefaultOptions returns the documented defaults: 20 results, all types, exact matching
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit}
}

// EffectiveLimit resolves the limit actually applied to results
func (o Options) EffectiveLimit() int {
	switch {
	case o.Limit <= 0:
		return DefaultLimit
	case o.Limit > MaxLimit:
		return MaxLimit
	default:
		return o.Limit
	}
}

// Match is a ranked document with its score breakdown
type Match struct {
	Document     model.SearchDocument
	MatchedTerms int      // distinct query terms found in the document
	Score        float64  // sum of the best weighted posting set per query term
	Terms        []string // index terms that matched, in query-term order
}

// candidate is an index term considered for one query term
type candidate struct {
	term       string
	multiplier float64
}

// Search returns the best matching documents for query, most relevant first
// A blank query or a query with no matches yields an empty slice.
func Search(idx *index.Index, query string, opts Options) []model.SearchDocument {
	matches := SearchScored(idx, query, opts)
	docs := make([]model.SearchDocument, len(matches))
	for i, m := range matches {
		docs[i] = m.Document
	}
	return docs
}

// SearchScored is like Search but keeps the score breakdown
// Ranking: more distinct query terms first, then higher score, then index build order.
func SearchScored(idx *index.Index, query string, opts Options) []Match {
	if idx == nil {
		return []Match{}
	}

	queryTerms := index.UniqueTerms(query)
	if len(queryTerms) == 0 {
		return []Match{}
	}

	type accumulator struct {
		matched int
		score   float64
		terms   []string
	}
	perDoc := make(map[string]*accumulator)

	for _, qt := range queryTerms {
		// Best score per document for this query term
		best := make(map[string]float64)
		bestTerm := make(map[string]string)

		for _, c := range expand(idx, qt, opts.Fuzzy) {
			sums := make(map[string]float64)
			for _, p := range idx.Postings(c.term) {
				if opts.Type != "" {
					doc, ok := idx.Document(p.DocID)
					if !ok || doc.Type != opts.Type {
						continue
					}
				}
				sums[p.DocID] += p.Weight
			}
			for docID, sum := range sums {
				score := sum * c.multiplier
				if score > best[docID] {
					best[docID] = score
					bestTerm[docID] = c.term
				}
			}
		}

		for docID, score := range best {
			acc, ok := perDoc[docID]
			if !ok {
				acc = &accumulator{}
				perDoc[docID] = acc
			}
			acc.matched++
			acc.score += score
			acc.terms = append(acc.terms, bestTerm[docID])
		}
	}

	matches := make([]Match, 0, len(perDoc))
	for docID, acc := range perDoc {
		doc, ok := idx.Document(docID)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Document:     doc,
			MatchedTerms: acc.matched,
			Score:        acc.score,
			Terms:        acc.terms,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchedTerms != matches[j].MatchedTerms {
			return matches[i].MatchedTerms > matches[j].MatchedTerms
		}
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return idx.Position(matches[i].Document.ID) < idx.Position(matches[j].Document.ID)
	})

	if limit := opts.EffectiveLimit(); len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// expand lists the index terms that can stand in for a query term
// Each index term appears once, with the strongest applicable multiplier.
func expand(idx *index.Index, queryTerm string, fuzzy bool) []candidate {
	var out []candidate
	if len(idx.Postings(queryTerm)) > 0 {
		out = append(out, candidate{term: queryTerm, multiplier: exactMultiplier})
	}

	qLen := utf8.RuneCountInString(queryTerm)
	maxEdits := fuzzyTolerance(qLen)

	for _, term := range idx.Vocabulary() {
		if term == queryTerm {
			continue
		}
		switch {
		case qLen >= minPrefixRunes && strings.HasPrefix(term, queryTerm):
			out = append(out, candidate{term: term, multiplier: prefixMultiplier})
		case qLen >= minInfixRunes && strings.Contains(term, queryTerm):
			out = append(out, candidate{term: term, multiplier: infixMultiplier})
		case fuzzy && maxEdits > 0:
			if d, ok := boundedLevenshtein(queryTerm, term, maxEdits); ok {
				out = append(out, candidate{term: term, multiplier: fuzzyMultiplier - 0.1*float64(d)})
			}
		}
	}
	return out
}
