package index

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	unicodetokenizer "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// analyzer splits on Unicode word boundaries and lower-cases every term.
// Both the index builder and the query engine go through it so that
// documents and queries normalize identically.
var analyzer = &analysis.DefaultAnalyzer{
	Tokenizer: unicodetokenizer.NewUnicodeTokenizer(),
	TokenFilters: []analysis.TokenFilter{
		lowercase.NewLowerCaseFilter(),
	},
}

// Tokenize converts free text into normalized terms
// Terms are lower-cased, stripped of punctuation and returned in text order (duplicates kept)
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	stream := analyzer.Analyze([]byte(text))
	terms := make([]string, 0, len(stream))
	for _, tok := range stream {
		term := stripPunctuation(string(tok.Term))
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// UniqueTerms tokenizes text and drops repeated terms, keeping first-seen order
func UniqueTerms(text string) []string {
	terms := Tokenize(text)
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

// stripPunctuation removes any rune that is neither a letter nor a digit
// The word segmenter keeps in-word apostrophes and periods ("don't", "v2.1")
func stripPunctuation(term string) string {
	clean := true
	for _, r := range term {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			clean = false
			break
		}
	}
	if clean {
		return term
	}

	var b strings.Builder
	b.Grow(len(term))
	for _, r := range term {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
