package dictionary

import (
	"fmt"
	"slices"
	"strings"
)

const (
	maxDefinitionsPerPOS = 10
	maxRelatedTerms      = 20
)

// FormatMeanings renders meanings grouped by part of speech, parts sorted by name.
func FormatMeanings(meanings map[string][]string) string {
	if len(meanings) == 0 {
		return "No definitions found."
	}
	parts := make([]string, 0, len(meanings))
	for pos := range meanings {
		parts = append(parts, pos)
	}
	slices.Sort(parts)

	var lines []string
	for _, pos := range parts {
		lines = append(lines, pos+":")
		defs := meanings[pos]
		if len(defs) > maxDefinitionsPerPOS {
			defs = defs[:maxDefinitionsPerPOS]
		}
		for i, d := range defs {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, d))
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// FormatSummary renders the full text shown to the user and handed to speech.
// Synonym and antonym sections are omitted when empty.
func FormatSummary(r Result) string {
	blocks := []string{fmt.Sprintf("Word: %s\n", r.Word)}
	blocks = append(blocks, "Definitions:\n"+FormatMeanings(r.Meanings))
	if len(r.Synonyms) > 0 {
		blocks = append(blocks, "\nSynonyms:\n"+strings.Join(limit(r.Synonyms, maxRelatedTerms), ", "))
	}
	if len(r.Antonyms) > 0 {
		blocks = append(blocks, "\nAntonyms:\n"+strings.Join(limit(r.Antonyms, maxRelatedTerms), ", "))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n"))
}

func limit(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

