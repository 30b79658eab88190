// Package fuzzy ranks near-miss candidates for parser error suggestions.
//
// When an unknown option or subcommand shows up, the parser asks this
// package whether the input is a plausible typo for something that does
// exist. Matching is bounded Levenshtein with CLI-flavored tie breakers
// (shared prefix, similar length). Comparisons are case-sensitive:
// option spellings distinguish -v from -V.
package fuzzy

import (
	"sort"
)

// Matcher scores candidates against an input within a fixed edit budget.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher returns a matcher that rejects candidates further than
// maxDistance edits away.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // single characters produce junk suggestions
	}
}

// Match is one scored candidate.
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// Rank returns every candidate within the edit budget, best first.
// Exact matches are excluded: an exact match is not a typo.
func (m *Matcher) Rank(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}

	var matches []Match
	for _, candidate := range candidates {
		if candidate == input {
			continue
		}
		d := m.distance(input, candidate)
		if d > m.maxDistance {
			continue
		}
		matches = append(matches, Match{
			Value:    candidate,
			Distance: d,
			Score:    m.score(input, candidate, d),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			if matches[i].Distance == matches[j].Distance {
				return matches[i].Value < matches[j].Value
			}
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// Sole returns the one candidate within the edit budget, and false when
// zero or several qualify. Error messages use it so a suggestion is only
// offered when it is unambiguous.
func (m *Matcher) Sole(input string, candidates []string) (string, bool) {
	matches := m.Rank(input, candidates)
	if len(matches) != 1 {
		return "", false
	}
	return matches[0].Value, true
}

// Best returns the highest ranked candidate, or "" when nothing is close.
func (m *Matcher) Best(input string, candidates []string) string {
	matches := m.Rank(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// score blends edit distance with a prefix bonus and a length bonus.
// Typos usually keep the first characters intact, so "--verbos" should
// prefer "--verbose" over an equally distant unrelated spelling.
func (m *Matcher) score(input, candidate string, distance int) float64 {
	maxLen := max(len(input), len(candidate))
	if maxLen == 0 {
		return 1.0
	}

	score := 1.0 - float64(distance)/float64(maxLen)

	if prefix := commonPrefix(input, candidate); prefix > 0 {
		score += float64(prefix) / float64(min(len(input), len(candidate))) * 0.3
	}

	lengthGap := abs(len(input) - len(candidate))
	score += (1.0 - float64(lengthGap)/float64(maxLen)) * 0.2

	return min(score, 1.0)
}

// distance is two-row Levenshtein with early termination once every
// cell in a row exceeds the budget.
func (m *Matcher) distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}

	// Keep the shorter string in a so the rows stay small.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i

		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}
			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
			rowMin = min(rowMin, curr[j])
		}

		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// commonPrefix returns the length of the shared prefix.
func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Convenience helpers used by the error constructors.

// SoleSuggestion reports the unambiguous near miss for input, if any.
func SoleSuggestion(input string, candidates []string, maxDistance int) (string, bool) {
	return NewMatcher(maxDistance).Sole(input, candidates)
}

// Suggestions returns up to limit near misses, best first.
func Suggestions(input string, candidates []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).Rank(input, candidates)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Value
	}
	return out
}
