package nlp

import (
	"math"
	"testing"
)

func TestSimilarity_ExactMatch(t *testing.T) {
	for _, s := range []string{"a", "buy milk", "Report"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
	if got := Similarity("Hello", "hello"); got != 1.0 {
		t.Errorf("case-insensitive exact match = %v, want 1.0", got)
	}
}

func TestSimilarity_EmptyStrings(t *testing.T) {
	if got := Similarity("", "x"); got != 0.0 {
		t.Errorf("Similarity(\"\", x) = %v, want 0.0", got)
	}
	if got := Similarity("x", ""); got != 0.0 {
		t.Errorf("Similarity(x, \"\") = %v, want 0.0", got)
	}
	// Two empty strings are equal but still score zero.
	if got := Similarity("", ""); got != 0.0 {
		t.Errorf("Similarity(\"\", \"\") = %v, want 0.0", got)
	}
}

func TestSimilarity_Substring(t *testing.T) {
	// "milk" is a substring of "buy milk": score = max/(a+b) = 8/12.
	got := Similarity("milk", "buy milk")
	want := 8.0 / 12.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("substring score = %v, want %v", got, want)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"grocer", "groceries"},
		{"report", "repost"},
		{"abc", "xyz"},
		{"", "x"},
	}
	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Errorf("Similarity(%q, %q) not symmetric", p[0], p[1])
		}
	}
}

func TestSimilarity_EditDistance(t *testing.T) {
	// "kitten" -> "sitting": distance 3, max length 7.
	got := Similarity("kitten", "sitting")
	want := 1 - 3.0/7.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Similarity(kitten, sitting) = %v, want %v", got, want)
	}
}

func TestBestMatch(t *testing.T) {
	m, ok := BestMatch("grocer", []string{"Buy groceries", "Finish report"})
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Value != "Buy groceries" {
		t.Errorf("match = %q, want %q", m.Value, "Buy groceries")
	}
	if m.Score <= 0.5 {
		t.Errorf("score = %v, want > 0.5", m.Score)
	}
}

func TestBestMatch_EmptyCandidates(t *testing.T) {
	if _, ok := BestMatch("anything", nil); ok {
		t.Error("expected no match for empty candidate list")
	}
}

func TestBestMatch_TieKeepsFirst(t *testing.T) {
	m, ok := BestMatch("ab", []string{"cd", "dc"})
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Value != "cd" {
		t.Errorf("tie should keep first candidate, got %q", m.Value)
	}
}
