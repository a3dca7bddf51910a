// Package patterns finds the dominant value of a field across a set of
// journal entries.
package patterns

import (
	"strings"

	"github.com/HendryAvila/azimut/internal/journal"
)

// ContextKey is the annotation holding the situation an emotion was
// felt in.
const ContextKey = "contexto"

// Selector extracts the field to count from an entry.
type Selector func(journal.Entry) string

// ValueField selects the entry value.
func ValueField() Selector {
	return func(e journal.Entry) string { return e.Value }
}

// LabelField selects the entry label.
func LabelField() Selector {
	return func(e journal.Entry) string { return e.Label }
}

// AnnotationField selects the annotation stored under key.
func AnnotationField(key string) Selector {
	return func(e journal.Entry) string { return e.Annotation(key) }
}

// Dominant returns the most frequent trimmed, non-empty value chosen by
// sel. When counts tie, the value seen first wins. ok is false if no
// entry yields a value.
func Dominant(entries []journal.Entry, sel Selector) (value string, ok bool) {
	counts := make(map[string]int)
	var order []string

	for _, e := range entries {
		v := strings.TrimSpace(sel(e))
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := 0
	for _, v := range order {
		if counts[v] > best {
			value, best = v, counts[v]
		}
	}
	return value, best > 0
}

// Summary is the dominant emotion and the dominant context of a window.
type Summary struct {
	DominantValue   string
	HasValue        bool
	DominantContext string
	HasContext      bool
}

// Insight computes the dominant value and context of entries.
func Insight(entries []journal.Entry) Summary {
	var s Summary
	s.DominantValue, s.HasValue = Dominant(entries, ValueField())
	s.DominantContext, s.HasContext = Dominant(entries, AnnotationField(ContextKey))
	return s
}
