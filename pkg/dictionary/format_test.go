package dictionary

import (
	"fmt"
	"strings"
	"testing"
)

func TestFormatMeaningsEmpty(t *testing.T) {
	if got := FormatMeanings(nil); got != "No definitions found." {
		t.Fatalf("got %q", got)
	}
}

func TestFormatMeaningsBlocks(t *testing.T) {
	meanings := map[string][]string{
		"Verb": {"to do something"},
		"Noun": {"a thing", "another meaning"},
	}
	text := FormatMeanings(meanings)
	if !strings.Contains(text, "Noun:") || !strings.Contains(text, "Verb:") {
		t.Fatalf("missing part of speech headers:\n%s", text)
	}
	if !strings.Contains(text, "  1. a thing") {
		t.Fatalf("missing numbered definition:\n%s", text)
	}
	if strings.Index(text, "Noun:") > strings.Index(text, "Verb:") {
		t.Fatalf("parts of speech not sorted:\n%s", text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatalf("trailing whitespace not trimmed: %q", text)
	}
}

func TestFormatMeaningsCapsDefinitions(t *testing.T) {
	var defs []string
	for i := 1; i <= 15; i++ {
		defs = append(defs, fmt.Sprintf("meaning %d", i))
	}
	text := FormatMeanings(map[string][]string{"Noun": defs})
	if !strings.Contains(text, "10. meaning 10") {
		t.Fatalf("expected 10th definition:\n%s", text)
	}
	if strings.Contains(text, "meaning 11") {
		t.Fatalf("expected at most 10 definitions:\n%s", text)
	}
}

func TestFormatSummarySections(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		want    []string
		notWant []string
	}{
		{
			name: "all sections",
			result: Result{
				Word:     "test",
				Meanings: map[string][]string{"Noun": {"first meaning"}},
				Synonyms: []string{"term1", "term2"},
				Antonyms: []string{"opposite"},
			},
			want: []string{"Word: test", "Definitions:", "Synonyms:\nterm1, term2", "Antonyms:\nopposite"},
		},
		{
			name: "no related terms",
			result: Result{
				Word:     "test",
				Meanings: map[string][]string{"Noun": {"first meaning"}},
			},
			want:    []string{"Word: test", "Definitions:\nNoun:"},
			notWant: []string{"Synonyms:", "Antonyms:"},
		},
		{
			name:   "no meanings",
			result: Result{Word: "test"},
			want:   []string{"Definitions:\nNo definitions found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatSummary(tt.result)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in:\n%s", w, out)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("did not expect %q in:\n%s", nw, out)
				}
			}
		})
	}
}

func TestFormatSummaryCapsRelatedTerms(t *testing.T) {
	var syns []string
	for i := 0; i < 30; i++ {
		syns = append(syns, fmt.Sprintf("s%02d", i))
	}
	out := FormatSummary(Result{Word: "w", Meanings: map[string][]string{"Noun": {"x"}}, Synonyms: syns})
	if !strings.Contains(out, "s19") || strings.Contains(out, "s20") {
		t.Fatalf("expected synonyms capped at 20:\n%s", out)
	}
}

func TestNormalizeWord(t *testing.T) {
	if got := NormalizeWord("  HaPPy \n"); got != "happy" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanTerms(t *testing.T) {
	got := cleanTerms("happy", []string{" glad", "content", "glad", "", "Happy", "cheerful "})
	want := []string{"cheerful", "content", "glad"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}
