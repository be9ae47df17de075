package intent

import "strings"

// Similarity scores how close two strings are on a 0..1 scale.
// Exact match (case-insensitive) is 1.0, substring containment in either
// direction is 0.8, anything else falls through to normalised edit distance.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}

	return float64(maxLen-levenshtein(a, b)) / float64(maxLen)
}

// levenshtein computes the classic edit distance with uniform cost 1 for
// insertions, deletions and substitutions.
func levenshtein(a, b string) int {
	rows := len(b) + 1
	cols := len(a) + 1

	d := make([][]int, rows)
	for i := range d {
		d[i] = make([]int, cols)
		d[i][0] = i
	}
	for j := 0; j < cols; j++ {
		d[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			if b[i-1] == a[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = 1 + min3(d[i-1][j-1], d[i][j-1], d[i-1][j])
		}
	}

	return d[rows-1][cols-1]
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
