package search

import "testing"

func TestFuzzyTolerance(t *testing.T) {
	tests := []struct {
		runes    int
		expected int
	}{
		{0, 0},
		{2, 0},
		{3, 0},
		{4, 1},
		{7, 1},
		{8, 2},
		{20, 2},
	}

	for _, tt := range tests {
		if got := fuzzyTolerance(tt.runes); got != tt.expected {
			t.Errorf("fuzzyTolerance(%d) = %d, want %d", tt.runes, got, tt.expected)
		}
	}
}

func TestBoundedLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		maxEdits int
		distance int
		within   bool
	}{
		{"comliance", "compliance", 2, 1, true},
		{"kitten", "sitting", 3, 3, true},
		{"kitten", "sitting", 2, 0, false},
		{"scanner", "scanner", 1, 0, true},
		{"", "a", 1, 1, true},
		{"", "ab", 1, 0, false},
		{"privacy", "pirvacy", 2, 2, true},
		{"безопасность", "безопастность", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			d, ok := boundedLevenshtein(tt.a, tt.b, tt.maxEdits)
			if ok != tt.within {
				t.Fatalf("within = %v, want %v", ok, tt.within)
			}
			if ok && d != tt.distance {
				t.Errorf("distance = %d, want %d", d, tt.distance)
			}
		})
	}
}
