// Package suggest finds the closest known word to a mistyped one.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// limit is the largest edit distance still considered a typo for a word of length n.
func limit(n int) int {
	switch {
	case n <= 3:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

// Closest returns the candidate nearest to word, or false when nothing is close enough.
// A candidate that starts with word wins over edit distance.
func Closest(word string, candidates []string) (string, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return "", false
	}

	best, bestDist := "", -1
	for _, cand := range candidates {
		if len(word) >= 2 && strings.HasPrefix(cand, word) {
			return cand, true
		}
		dist := levenshtein.ComputeDistance(word, cand)
		if dist > limit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && cand < best) {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

// Hint formats a " (did you mean %q?)" suffix, or "" when there is no close candidate.
func Hint(word string, candidates []string) string {
	if s, ok := Closest(word, candidates); ok {
		return ` (did you mean "` + s + `"?)`
	}
	return ""
}
