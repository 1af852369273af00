// Package index builds the immutable in-memory inverted index over site documents
package index

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/igusev/sitesearch/internal/model"
)

// ErrDuplicateID indicates two documents share the same id
var ErrDuplicateID = errors.New("duplicate document id")

// Field identifies the document field a term was found in
type Field string

// Indexed fields
const (
	FieldTitle       Field = "title"
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
	FieldContent     Field = "content"
)

// Field importance: title > category > description > content
const (
	TitleWeight       = 10.0
	CategoryWeight    = 6.0
	DescriptionWeight = 4.0
	ContentWeight     = 1.0
)

// indexedFields lists fields in the order postings are emitted for a document
var indexedFields = []Field{FieldTitle, FieldCategory, FieldDescription, FieldContent}

// Weight returns the base importance of a field
func (f Field) Weight() float64 {
	switch f {
	case FieldTitle:
		return TitleWeight
	case FieldCategory:
		return CategoryWeight
	case FieldDescription:
		return DescriptionWeight
	case FieldContent:
		return ContentWeight
	default:
		return 0
	}
}

func fieldText(doc model.SearchDocument, f Field) string {
	switch f {
	case FieldTitle:
		return doc.Title
	case FieldCategory:
		return doc.Category
	case FieldDescription:
		return doc.Description
	case FieldContent:
		return doc.Content
	default:
		return ""
	}
}

// Posting links a term to one field of one document
type Posting struct {
	DocID     string
	Field     Field
	Frequency int     // occurrences of the term within the field
	Weight    float64 // field weight scaled by term frequency
}

// postingWeight grows logarithmically with frequency so that a long body
// repeating a word cannot outweigh a single title hit
func postingWeight(f Field, frequency int) float64 {
	if frequency <= 0 {
		return 0
	}
	return f.Weight() * (1 + math.Log2(float64(frequency)))
}

// Index is an immutable inverted index plus a document-by-id table
// It is safe for concurrent readers; nothing mutates it after Build returns.
type Index struct {
	postings   map[string][]Posting
	vocabulary []string
	docs       []model.SearchDocument
	byID       map[string]int
}

// Build indexes docs in the given order
// Every document is kept in the by-id table, even when it yields no postings.
func Build(docs []model.SearchDocument) (*Index, error) {
	idx := &Index{
		postings: make(map[string][]Posting),
		docs:     make([]model.SearchDocument, 0, len(docs)),
		byID:     make(map[string]int, len(docs)),
	}

	for _, doc := range docs {
		if _, exists := idx.byID[doc.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, doc.ID)
		}
		idx.byID[doc.ID] = len(idx.docs)
		idx.docs = append(idx.docs, doc)

		for _, field := range indexedFields {
			terms := Tokenize(fieldText(doc, field))
			if len(terms) == 0 {
				continue
			}

			// Count frequency per term, remembering first-seen order for stable output
			freq := make(map[string]int, len(terms))
			order := make([]string, 0, len(terms))
			for _, term := range terms {
				if freq[term] == 0 {
					order = append(order, term)
				}
				freq[term]++
			}

			for _, term := range order {
				idx.postings[term] = append(idx.postings[term], Posting{
					DocID:     doc.ID,
					Field:     field,
					Frequency: freq[term],
					Weight:    postingWeight(field, freq[term]),
				})
			}
		}
	}

	idx.vocabulary = make([]string, 0, len(idx.postings))
	for term := range idx.postings {
		idx.vocabulary = append(idx.vocabulary, term)
	}
	sort.Strings(idx.vocabulary)

	return idx, nil
}

// Postings returns the postings for an exact normalized term
// The returned slice must not be modified.
func (idx *Index) Postings(term string) []Posting {
	return idx.postings[term]
}

// Vocabulary returns every indexed term in sorted order
// The returned slice must not be modified.
func (idx *Index) Vocabulary() []string {
	return idx.vocabulary
}

// Document looks up a document by id
func (idx *Index) Document(id string) (model.SearchDocument, bool) {
	pos, ok := idx.byID[id]
	if !ok {
		return model.SearchDocument{}, false
	}
	return idx.docs[pos], true
}

// Position returns the build order of a document, or -1 when unknown
func (idx *Index) Position(id string) int {
	pos, ok := idx.byID[id]
	if !ok {
		return -1
	}
	return pos
}

// Documents returns a copy of all documents in build order
func (idx *Index) Documents() []model.SearchDocument {
	out := make([]model.SearchDocument, len(idx.docs))
	copy(out, idx.docs)
	return out
}

// Len returns the number of indexed documents
func (idx *Index) Len() int {
	return len(idx.docs)
}

// TermCount returns the vocabulary size
func (idx *Index) TermCount() int {
	return len(idx.vocabulary)
}

// CountByType returns how many documents of each type the index holds
func (idx *Index) CountByType() map[model.DocumentType]int {
	counts := make(map[model.DocumentType]int)
	for _, doc := range idx.docs {
		counts[doc.Type]++
	}
	return counts
}
