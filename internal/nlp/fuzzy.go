package nlp

import "strings"

// Similarity scores how alike two strings are, in [0,1]. Comparison is
// case-insensitive: an empty string scores 0.0 against anything (including
// another empty string), equal strings score 1.0, a substring relationship
// scores max(len)/(len(a)+len(b)), and everything else scores one minus the
// Levenshtein distance normalized by the longer string's length.
func Similarity(a, b string) float64 {
	s1 := strings.ToLower(a)
	s2 := strings.ToLower(b)

	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}
	if s1 == s2 {
		return 1.0
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return float64(max(len(s1), len(s2))) / float64(len(s1)+len(s2))
	}

	dist := levenshtein(s1, s2)
	return 1 - float64(dist)/float64(max(len(s1), len(s2)))
}

// levenshtein computes the classic single-character edit distance with unit
// costs, using two rolling rows.
func levenshtein(s1, s2 string) int {
	prev := make([]int, len(s1)+1)
	curr := make([]int, len(s1)+1)
	for j := 0; j <= len(s1); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(s2); i++ {
		curr[0] = i
		for j := 1; j <= len(s1); j++ {
			if s2[i-1] == s1[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = min(prev[j-1], curr[j-1], prev[j]) + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(s1)]
}

// Match is the result of a fuzzy lookup.
type Match struct {
	Value string
	Score float64
}

// BestMatch returns the candidate most similar to input, or ok=false for an
// empty candidate list. Ties resolve to the first candidate encountered.
func BestMatch(input string, candidates []string) (Match, bool) {
	var best Match
	found := false
	for _, c := range candidates {
		score := Similarity(input, c)
		if !found || score > best.Score {
			best = Match{Value: c, Score: score}
			found = true
		}
	}
	return best, found
}
