package patterns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/azimut/internal/journal"
)

func withValues(t *testing.T, values ...string) []journal.Entry {
	t.Helper()
	out := make([]journal.Entry, 0, len(values))
	for i, v := range values {
		e, err := journal.NewEntry(time.Date(2026, 3, 2, 9, i, 0, 0, time.UTC), 3, "", "emoción", v, nil)
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
		wantOK bool
	}{
		{"tie keeps first seen", []string{"A", "B", "A", "B"}, "A", true},
		{"tie order reversed", []string{"B", "A", "A", "B"}, "B", true},
		{"clear majority", []string{"B", "A", "A"}, "A", true},
		{"trimmed before counting", []string{" calma", "ira", "calma  "}, "calma", true},
		{"blank values ignored", []string{"", "   ", "ira"}, "ira", true},
		{"nothing qualifies", []string{"", "  "}, "", false},
		{"empty input", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Dominant(withValues(t, tt.values...), ValueField())
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDominant_IsDeterministic(t *testing.T) {
	entries := withValues(t, "x", "y", "z", "y", "x", "z")
	first, _ := Dominant(entries, ValueField())
	for i := 0; i < 50; i++ {
		got, _ := Dominant(entries, ValueField())
		require.Equal(t, first, got)
	}
	assert.Equal(t, "x", first)
}

func TestSelectors(t *testing.T) {
	e, err := journal.NewEntry(time.Now(), 3, "", "  Respiración ", "ansiedad", map[string]string{ContextKey: "trabajo"})
	require.NoError(t, err)

	assert.Equal(t, "ansiedad", ValueField()(e))
	assert.Equal(t, "Respiración", LabelField()(e))
	assert.Equal(t, "trabajo", AnnotationField(ContextKey)(e))
	assert.Equal(t, "", AnnotationField("missing")(e))
}

func TestInsight(t *testing.T) {
	mk := func(value, ctx string) journal.Entry {
		var ann map[string]string
		if ctx != "" {
			ann = map[string]string{ContextKey: ctx}
		}
		e, err := journal.NewEntry(time.Now(), 3, "", "", value, ann)
		require.NoError(t, err)
		return e
	}

	s := Insight([]journal.Entry{mk("miedo", "trabajo"), mk("calma", "casa"), mk("miedo", "casa"), mk("", "casa")})
	assert.Equal(t, Summary{DominantValue: "miedo", HasValue: true, DominantContext: "casa", HasContext: true}, s)

	s = Insight([]journal.Entry{mk("calma", "")})
	assert.True(t, s.HasValue)
	assert.False(t, s.HasContext)

	assert.Equal(t, Summary{}, Insight(nil))
}
