package search

import (
	"unicode"

	"github.com/igusev/sitesearch/internal/index"
)

// Span is a run of text that either matched a query term or did not
// Renderers style matched spans; no markup is ever embedded in Text.
type Span struct {
	Text  string
	Match bool
}

// Highlight splits text into spans marking case-insensitive occurrences of
// each query term. Overlapping or adjacent occurrences collapse into a single
// matched span. Joining the Text of all spans reproduces text exactly.
// Punctuation inside a word is ignored when matching, the same way the
// tokenizer drops it, so "dont" marks all of "don't".
func Highlight(text, query string) []Span {
	if text == "" {
		return nil
	}

	terms := index.UniqueTerms(query)
	if len(terms) == 0 {
		return []Span{{Text: text}}
	}

	// Byte offset of every rune
	runes := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		offsets = append(offsets, i)
		runes = append(runes, r)
	}
	offsets = append(offsets, len(text))

	// Lower-cased comparison copy without in-word punctuation; origin maps
	// each compared rune back to its index in runes
	lowered := make([]rune, 0, len(runes))
	origin := make([]int, 0, len(runes))
	for i, r := range runes {
		if !isWordRune(r) && i > 0 && i+1 < len(runes) && isWordRune(runes[i-1]) && isWordRune(runes[i+1]) {
			continue
		}
		lowered = append(lowered, unicode.ToLower(r))
		origin = append(origin, i)
	}

	marked := make([]bool, len(runes))
	for _, term := range terms {
		needle := []rune(term)
		if len(needle) == 0 || len(needle) > len(lowered) {
			continue
		}
		for start := 0; start+len(needle) <= len(lowered); start++ {
			if runesEqual(lowered[start:start+len(needle)], needle) {
				for k := origin[start]; k <= origin[start+len(needle)-1]; k++ {
					marked[k] = true
				}
			}
		}
	}

	var spans []Span
	runStart := 0
	for i := 1; i <= len(marked); i++ {
		if i == len(marked) || marked[i] != marked[runStart] {
			spans = append(spans, Span{
				Text:  text[offsets[runStart]:offsets[i]],
				Match: marked[runStart],
			})
			runStart = i
		}
	}
	return spans
}

// HasMatch reports whether any span matched
func HasMatch(spans []Span) bool {
	for _, s := range spans {
		if s.Match {
			return true
		}
	}
	return false
}

// JoinSpans renders spans with the given decorator for matched runs
func JoinSpans(spans []Span, decorate func(string) string) string {
	size := 0
	for _, s := range spans {
		size += len(s.Text)
	}
	buf := make([]byte, 0, size)
	for _, s := range spans {
		if s.Match && decorate != nil {
			buf = append(buf, decorate(s.Text)...)
			continue
		}
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
