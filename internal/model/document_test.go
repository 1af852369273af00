package model

import (
	"errors"
	"testing"
)

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  DocumentType
		wantError bool
	}{
		{name: "product", input: "product", expected: TypeProduct},
		{name: "upper case", input: "BLOG", expected: TypeBlog},
		{name: "padded", input: "  docs ", expected: TypeDocs},
		{name: "whitepaper", input: "whitepaper", expected: TypeWhitepaper},
		{name: "learn", input: "learn", expected: TypeLearn},
		{name: "page", input: "page", expected: TypePage},
		{name: "unknown", input: "video", wantError: true},
		{name: "empty", input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDocumentType(tt.input)
			if tt.wantError {
				if !errors.Is(err, ErrUnknownType) {
					t.Errorf("ParseDocumentType(%q) error = %v, want ErrUnknownType", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDocumentType(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseDocumentType(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestAllDocumentTypes_ReturnsCopy(t *testing.T) {
	types := AllDocumentTypes()
	if len(types) != 6 {
		t.Fatalf("Expected 6 document types, got %d", len(types))
	}

	types[0] = "mutated"
	if AllDocumentTypes()[0] != TypeProduct {
		t.Error("AllDocumentTypes should return a copy")
	}
}

func TestSearchDocument_Validate(t *testing.T) {
	valid := SearchDocument{ID: "p1", Type: TypeProduct, Title: "TorScan", URL: "/products/torscan"}

	tests := []struct {
		name      string
		mutate    func(d *SearchDocument)
		wantError bool
	}{
		{name: "valid", mutate: func(d *SearchDocument) {}},
		{name: "valid with empty content", mutate: func(d *SearchDocument) { d.Content = "" }},
		{name: "missing id", mutate: func(d *SearchDocument) { d.ID = " " }, wantError: true},
		{name: "missing title", mutate: func(d *SearchDocument) { d.Title = "" }, wantError: true},
		{name: "missing url", mutate: func(d *SearchDocument) { d.URL = "" }, wantError: true},
		{name: "unknown type", mutate: func(d *SearchDocument) { d.Type = "video" }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid
			tt.mutate(&doc)
			err := doc.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSearchDocument_DisplayString(t *testing.T) {
	tests := []struct {
		name     string
		doc      SearchDocument
		expected string
	}{
		{
			name:     "without category",
			doc:      SearchDocument{Type: TypeBlog, Title: "Security Tips"},
			expected: "[Blog] > Security Tips",
		},
		{
			name:     "with category",
			doc:      SearchDocument{Type: TypeDocs, Title: "Install", Category: "Getting Started"},
			expected: "[Docs / Getting Started] > Install",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.DisplayString(); got != tt.expected {
				t.Errorf("DisplayString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDocumentType_LabelAndIcon(t *testing.T) {
	for _, typ := range AllDocumentTypes() {
		if typ.Label() == "" {
			t.Errorf("Type %q has empty label", typ)
		}
		if typ.Icon() == "" {
			t.Errorf("Type %q has empty icon", typ)
		}
	}
}
