// Package fuzzy provides typo-tolerant string similarity scoring on a 0-100 scale.
package fuzzy

import "math"

// Ratio returns how similar a and b are, from 0 (nothing in common) to 100 (identical).
// The score is (len(a)+len(b)-indel) / (len(a)+len(b)) in runes, where indel is the
// number of single-rune insertions and deletions turning a into b. A substitution
// therefore costs two edits. Halves round to even.
// Comparison is case-sensitive; callers lower-case both sides when needed.
// An empty string never matches anything.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	total := len(ra) + len(rb)
	indel := total - 2*lcsLength(ra, rb)
	return int(math.RoundToEven(float64(total-indel) * 100 / float64(total)))
}

// BestMatch finds the choice with the highest Ratio against query.
// Ties keep the earliest choice. Returns index -1 and score 0 when choices is empty.
func BestMatch(query string, choices []string) (int, int) {
	bestIdx, bestScore := -1, 0
	for i, choice := range choices {
		score := Ratio(query, choice)
		if bestIdx == -1 || score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore
}

// lcsLength is the longest common subsequence length, two rows of the DP table at a time.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
