// Package dictionary looks up English words (definitions, synonyms, antonyms)
// through an external dictionary service and renders them as plain text.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors. Every error returned by a Lookuper wraps ErrLookupFailed.
var (
	ErrLookupFailed = errors.New("lookup failed")
	ErrNotFound     = fmt.Errorf("%w: no definitions found", ErrLookupFailed)
	ErrEmptyWord    = fmt.Errorf("%w: empty word", ErrLookupFailed)
)

// Result is what a lookup produces for a single word.
type Result struct {
	Word string
	// Meanings maps a part of speech (e.g. "Noun") to its definitions, in service order.
	Meanings map[string][]string
	Synonyms []string
	Antonyms []string
}

// Definition renders the meanings block of the result.
func (r Result) Definition() string {
	return FormatMeanings(r.Meanings)
}

// Lookuper resolves a word to a Result.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (Result, error)
}

// LookupFunc adapts a function to the Lookuper interface.
type LookupFunc func(ctx context.Context, word string) (Result, error)

func (f LookupFunc) Lookup(ctx context.Context, word string) (Result, error) {
	return f(ctx, word)
}

// NormalizeWord trims and lower-cases a query.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// cleanTerms trims, drops blanks and the looked-up word itself, de-duplicates and sorts.
func cleanTerms(word string, terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" || strings.EqualFold(t, word) {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
