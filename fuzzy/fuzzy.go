package fuzzy

// Fuzzy name resolution for free-text artist (and other) lookups. All
// substring and equality comparisons elsewhere in the service go through
// Normalize so that two strings are "the same" exactly when they normalize
// identically.

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultThreshold is the minimum similarity score FindBestMatch accepts
// as a match.
const DefaultThreshold = 0.6

// Normalize lower-cases s, strips everything outside [a-z0-9] and
// whitespace, collapses whitespace runs to single spaces and trims.
func Normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j-1]+1, curr[j-1]+1, prev[j]+1)
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
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

// Similarity scores two strings in [0,1] as 1 minus the normalized
// Levenshtein distance of their normalized forms. Two strings that both
// normalize to "" score 1.
func Similarity(a, b string) float64 {
	normA := Normalize(a)
	normB := Normalize(b)

	if normA == normB {
		return 1
	}

	lenA := len([]rune(normA))
	lenB := len([]rune(normB))
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	if maxLen == 0 {
		return 1
	}

	return 1 - float64(levenshtein(normA, normB))/float64(maxLen)
}

// Result is the outcome of a FindBestMatch call. Absence of a match is a
// normal result, never an error: Found is false and Suggestions carries the
// closest candidates.
type Result struct {
	Match       string
	Found       bool
	Score       float64
	Suggestions []string
}

// FindBestMatch resolves query against candidates. An exact normalized
// match wins immediately with score 1 and no suggestions, skipping the
// distance computation entirely. Otherwise every candidate is scored; the
// top candidate is returned as the match when it meets DefaultThreshold
// (with the next 3 as suggestions), and as a miss with the top 5 as
// suggestions when it does not. Ties keep the original candidate order.
func FindBestMatch(query string, candidates []string) Result {
	normalizedQuery := Normalize(query)

	for _, c := range candidates {
		if Normalize(c) == normalizedQuery {
			return Result{Match: c, Found: true, Score: 1}
		}
	}

	type scored struct {
		candidate string
		score     float64
	}
	scores := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		scores = append(scores, scored{candidate: c, score: Similarity(query, c)})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if len(scores) == 0 {
		return Result{}
	}

	best := scores[0]
	if best.score >= DefaultThreshold {
		suggestions := make([]string, 0, 3)
		for _, s := range scores[1:] {
			if len(suggestions) == 3 {
				break
			}
			suggestions = append(suggestions, s.candidate)
		}
		return Result{Match: best.candidate, Found: true, Score: best.score, Suggestions: suggestions}
	}

	suggestions := make([]string, 0, 5)
	for _, s := range scores {
		if len(suggestions) == 5 {
			break
		}
		suggestions = append(suggestions, s.candidate)
	}
	return Result{Score: best.score, Suggestions: suggestions}
}

// ContainsMatch returns the candidates whose normalized form contains the
// normalized query, or vice versa. Used as a secondary suggestion source
// when FindBestMatch comes up empty.
func ContainsMatch(query string, candidates []string) []string {
	normalizedQuery := Normalize(query)
	var matches []string
	for _, c := range candidates {
		normalizedCandidate := Normalize(c)
		if strings.Contains(normalizedCandidate, normalizedQuery) ||
			strings.Contains(normalizedQuery, normalizedCandidate) {
			matches = append(matches, c)
		}
	}
	return matches
}
