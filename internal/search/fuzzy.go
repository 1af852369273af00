package search

// fuzzyTolerance returns the allowed edit distance for a query term of n runes
// Short terms are never matched fuzzily; they produce too many false hits.
func fuzzyTolerance(n int) int {
	switch {
	case n < minFuzzyRunes:
		return 0
	case n < 8:
		return 1
	default:
		return 2
	}
}

// boundedLevenshtein computes the rune-level edit distance between a and b
// and reports whether it is within maxEdits. It stops as soon as every cell of a
// row exceeds maxEdits.
func boundedLevenshtein(a, b string, maxEdits int) (int, bool) {
	ra, rb := []rune(a), []rune(b)
	if diff := len(ra) - len(rb); diff > maxEdits || -diff > maxEdits {
		return 0, false
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > maxEdits {
			return 0, false
		}
		prev, curr = curr, prev
	}

	d := prev[len(rb)]
	return d, d <= maxEdits
}
