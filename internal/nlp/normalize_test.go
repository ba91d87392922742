package nlp

import (
	"reflect"
	"testing"
)

func TestCorrectTypos_Basic(t *testing.T) {
	got := CorrectTypos("complet the taks")
	if got != "complete the tasks" {
		t.Errorf("CorrectTypos = %q, want %q", got, "complete the tasks")
	}
}

func TestCorrectTypos_CapitalizationPreserved(t *testing.T) {
	cases := []struct{ in, want string }{
		{"taks", "tasks"},
		{"TAKS", "TASKS"},
		{"Taks", "Tasks"},
	}
	for _, c := range cases {
		if got := CorrectTypos(c.in); got != c.want {
			t.Errorf("CorrectTypos(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCorrectTypos_NoKnownTypos(t *testing.T) {
	in := "walk the dog"
	if got := CorrectTypos(in); got != in {
		t.Errorf("CorrectTypos(%q) = %q, want unchanged", in, got)
	}
}

func TestCorrectTypos_PunctuationStripped(t *testing.T) {
	// "taks," matches the table after punctuation is stripped; the canonical
	// form replaces the whole token.
	if got := CorrectTypos("show taks,"); got != "show tasks" {
		t.Errorf("CorrectTypos = %q, want %q", got, "show tasks")
	}
}

func TestCorrectTypos_EmptyInput(t *testing.T) {
	if got := CorrectTypos(""); got != "" {
		t.Errorf("CorrectTypos(\"\") = %q", got)
	}
	if got := CorrectTypos("   "); got != "   " {
		t.Errorf("CorrectTypos(blank) = %q", got)
	}
}

func TestFindSynonyms(t *testing.T) {
	got := FindSynonyms("add")
	want := []string{"create", "new", "make"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindSynonyms(add) = %v, want %v", got, want)
	}
	if got := FindSynonyms("ADD"); !reflect.DeepEqual(got, want) {
		t.Errorf("FindSynonyms is not case-insensitive: %v", got)
	}
	if got := FindSynonyms("zebra"); len(got) != 0 {
		t.Errorf("FindSynonyms(zebra) = %v, want empty", got)
	}
}

func TestExpandCommand_NoSynonyms(t *testing.T) {
	got := ExpandCommand("xyzzy plugh")
	if len(got) != 1 || got[0] != "xyzzy plugh" {
		t.Errorf("ExpandCommand = %v, want single original", got)
	}
}

func TestExpandCommand_SingleWordSubstitutions(t *testing.T) {
	got := ExpandCommand("add milk")
	want := map[string]bool{
		"add milk":    true,
		"create milk": true,
		"new milk":    true,
		"make milk":   true,
	}
	for _, v := range got {
		if !want[v] {
			t.Errorf("unexpected variant %q", v)
		}
		delete(want, v)
	}
	for missing := range want {
		t.Errorf("missing variant %q", missing)
	}
	if got[0] != "add milk" {
		t.Errorf("original should come first, got %q", got[0])
	}

	// Two synonym-bearing words must not stack: each variant differs from
	// the original in exactly one word.
	got = ExpandCommand("add task")
	variants := make(map[string]bool, len(got))
	for _, v := range got {
		variants[v] = true
	}
	for _, want := range []string{"add task", "create task", "add todo"} {
		if !variants[want] {
			t.Errorf("missing variant %q", want)
		}
	}
	if variants["create todo"] {
		t.Errorf("stacked variant %q should not be produced", "create todo")
	}
}

func TestExpandCommand_Deduplicates(t *testing.T) {
	got := ExpandCommand("add task")
	seen := make(map[string]bool)
	for _, v := range got {
		if seen[v] {
			t.Errorf("duplicate variant %q", v)
		}
		seen[v] = true
	}
}
