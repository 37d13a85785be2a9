package service

import (
	"strings"
	"unicode"
)

// QuestionMatcher detects near-duplicate question texts with a Levenshtein similarity score.
type QuestionMatcher struct {
	threshold float64 // similarity in [0, 1] at which two texts are considered the same
}

// NewQuestionMatcher creates a QuestionMatcher.
func NewQuestionMatcher() *QuestionMatcher {
	return &QuestionMatcher{
		threshold: 0.9,
	}
}

// Same reports whether two question texts are equal up to case, punctuation and small typos.
func (m *QuestionMatcher) Same(a, b string) bool {
	a, b = normalizeText(a), normalizeText(b)
	if a == b {
		return true
	}
	return similarity(a, b) >= m.threshold
}

// Any reports whether text matches one of candidates.
func (m *QuestionMatcher) Any(text string, candidates []string) bool {
	for _, c := range candidates {
		if m.Same(text, c) {
			return true
		}
	}
	return false
}

func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the edit distance keeping two rows of the table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
