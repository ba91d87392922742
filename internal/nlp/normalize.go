// Package nlp provides the deterministic text utilities behind the chat
// assistant: typo correction, synonym lookup, and fuzzy string matching.
package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

var punctRe = regexp.MustCompile(`[^\w\s]|_`)

// CorrectTypos replaces known misspellings in text with their canonical
// form, preserving each token's capitalization pattern (ALL-CAPS, leading
// capital, or lower case). Tokens not in the typo table pass through
// unchanged. The function is pure and never fails.
func CorrectTypos(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	out := make([]string, len(words))
	for i, word := range words {
		clean := punctRe.ReplaceAllString(strings.ToLower(word), "")
		corrected, ok := typoTable[clean]
		if !ok {
			out[i] = word
			continue
		}
		out[i] = matchCase(word, corrected)
	}
	return strings.Join(out, " ")
}

// matchCase applies the capitalization pattern of original to replacement.
func matchCase(original, replacement string) string {
	if original == strings.ToUpper(original) {
		return strings.ToUpper(replacement)
	}
	r := []rune(original)
	if len(r) > 0 && unicode.IsUpper(r[0]) {
		return strings.ToUpper(replacement[:1]) + replacement[1:]
	}
	return replacement
}

// FindSynonyms returns the synonyms for word, or an empty slice when the
// word has none. Lookup is exact and case-insensitive.
func FindSynonyms(word string) []string {
	syns, ok := synonymTable[strings.ToLower(word)]
	if !ok {
		return nil
	}
	out := make([]string, len(syns))
	copy(out, syns)
	return out
}

// canonicalOf is the reverse synonym index: alternative word to canonical.
var canonicalOf = func() map[string]string {
	m := make(map[string]string)
	for canon, syns := range synonymTable {
		for _, s := range syns {
			m[s] = canon
		}
	}
	return m
}()

// ExpandCommand returns the input plus every variant produced by replacing
// exactly one word of the original input with a synonym or its canonical
// form. Variants never stack substitutions across words. They are
// deduplicated; an input with no synonym hits yields a single-element slice
// containing the original.
func ExpandCommand(input string) []string {
	words := strings.Fields(input)
	expanded := []string{input}

	for i, word := range words {
		syns := FindSynonyms(word)
		if canon, ok := canonicalOf[strings.ToLower(word)]; ok {
			syns = append(syns, canon)
		}
		for _, syn := range syns {
			next := make([]string, len(words))
			copy(next, words)
			next[i] = syn
			expanded = append(expanded, strings.Join(next, " "))
		}
	}

	seen := make(map[string]struct{}, len(expanded))
	out := expanded[:0]
	for _, v := range expanded {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
