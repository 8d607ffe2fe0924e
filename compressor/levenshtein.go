package compressor

// Levenshtein computes the standard unit-cost edit distance between a
// and b in O(min(|a|,|b|)) space, using the classic two-row dynamic
// program (grounded on the same algorithm as
// original_source/elsim/similarity/__init__.py's
// SIMILARITYPython.levenshtein).
func (f *Facade) Levenshtein(a, b []byte) int {
	return Levenshtein(a, b)
}

// Levenshtein is the free function; Facade.Levenshtein is a thin
// convenience wrapper so callers that already hold a *Facade need not
// import this package's top-level name separately.
func Levenshtein(a, b []byte) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n, m := len(a), len(b)

	previous := make([]int, n+1)
	current := make([]int, n+1)
	for i := 0; i <= n; i++ {
		previous[i] = i
	}

	for i := 1; i <= m; i++ {
		current[0] = i
		for j := 1; j <= n; j++ {
			add := previous[j] + 1
			del := current[j-1] + 1
			change := previous[j-1]
			if a[j-1] != b[i-1] {
				change++
			}
			current[j] = min3(add, del, change)
		}
		previous, current = current, previous
	}

	return previous[n]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
