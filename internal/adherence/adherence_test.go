package adherence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/azimut/internal/journal"
)

var d0 = journal.MustParseDate("2026-03-02")

func onDays(t *testing.T, days ...journal.Date) []journal.Entry {
	t.Helper()
	out := make([]journal.Entry, 0, len(days))
	for i, d := range days {
		e, err := journal.NewEntry(time.Date(2026, 4, 1, 8, i, 0, 0, time.UTC), 1, d.String(), "l", "v", nil)
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestAnalyze_ContinuousRun(t *testing.T) {
	r := Analyze(onDays(t, d0, d0.AddDays(1), d0.AddDays(2)), d0.AddDays(2), nil)

	require.True(t, r.HasData)
	assert.Equal(t, d0, r.StartDate)
	assert.Equal(t, 3, r.TotalDays)
	assert.Equal(t, 3, r.ActiveDays)
	assert.InDelta(t, 1.0, r.ActiveRate, 1e-9)
	assert.Equal(t, 3, r.CurrentStreak)
	assert.Equal(t, 3, r.BestStreak)
	assert.Nil(t, r.Target)
}

func TestAnalyze_GapBreaksCurrentStreak(t *testing.T) {
	r := Analyze(onDays(t, d0, d0.AddDays(1), d0.AddDays(3)), d0.AddDays(3), nil)

	assert.Equal(t, 4, r.TotalDays)
	assert.Equal(t, 3, r.ActiveDays)
	assert.Equal(t, 1, r.CurrentStreak)
	assert.Equal(t, 2, r.BestStreak)
}

func TestAnalyze_DuplicateDatesCountOnce(t *testing.T) {
	r := Analyze(onDays(t, d0, d0, d0, d0.AddDays(1)), d0.AddDays(1), nil)

	assert.Equal(t, 2, r.ActiveDays)
	assert.Equal(t, 2, r.CurrentStreak)
}

func TestAnalyze_InactiveAsOf(t *testing.T) {
	r := Analyze(onDays(t, d0, d0.AddDays(1)), d0.AddDays(5), nil)

	assert.Equal(t, 6, r.TotalDays)
	assert.Equal(t, 0, r.CurrentStreak)
	assert.Equal(t, 2, r.BestStreak)
}

func TestAnalyze_Empty(t *testing.T) {
	r := Analyze(nil, d0, nil)

	assert.False(t, r.HasData)
	assert.Equal(t, Report{}, r)
}

func TestAnalyze_AsOfBeforeStartFloorsTotal(t *testing.T) {
	r := Analyze(onDays(t, d0.AddDays(3)), d0, nil)

	require.True(t, r.HasData)
	assert.Equal(t, 1, r.TotalDays)
	assert.Equal(t, 0, r.ActiveDays)
	assert.Equal(t, 0, r.CurrentStreak)
	assert.Equal(t, 0, r.BestStreak)
}

func TestAnalyze_ProfileStartOnlyMovesLater(t *testing.T) {
	entries := onDays(t, d0, d0.AddDays(1), d0.AddDays(4), d0.AddDays(5))

	later := d0.AddDays(4).String()
	r := Analyze(entries, d0.AddDays(5), &journal.Profile{StartDate: &later})
	assert.Equal(t, d0.AddDays(4), r.StartDate)
	assert.Equal(t, 2, r.TotalDays)
	assert.Equal(t, 2, r.ActiveDays)
	assert.Equal(t, 2, r.BestStreak)

	earlier := d0.AddDays(-30).String()
	r = Analyze(entries, d0.AddDays(5), &journal.Profile{StartDate: &earlier})
	assert.Equal(t, d0, r.StartDate)
	assert.Equal(t, 6, r.TotalDays)
}

func TestAnalyze_TargetProgress(t *testing.T) {
	entries := onDays(t, d0, d0, d0.AddDays(1), d0.AddDays(2), d0.AddDays(2), d0.AddDays(2))
	p := &journal.Profile{TargetDaysPerWeek: 7, TargetEntriesPerDay: 2}

	r := Analyze(entries, d0.AddDays(6), p)
	require.NotNil(t, r.Target)
	assert.Equal(t, 7, r.Target.ExpectedActiveDays)
	assert.False(t, r.Target.DaysOnTrack)
	assert.InDelta(t, 2.0, r.Target.AvgEntriesPerActiveDay, 1e-9)
	assert.True(t, r.Target.EntriesOnTrack)

	assert.Nil(t, Analyze(entries, d0, &journal.Profile{}).Target, "a profile without goals adds no target")
}

func TestAnalyze_Invariants(t *testing.T) {
	cases := [][]journal.Date{
		{d0},
		{d0, d0.AddDays(2), d0.AddDays(4)},
		{d0, d0.AddDays(1), d0.AddDays(2), d0.AddDays(10), d0.AddDays(11)},
		{d0.AddDays(9), d0.AddDays(-3), d0},
	}
	for _, days := range cases {
		entries := onDays(t, days...)
		for offset := -4; offset <= 14; offset++ {
			r := Analyze(entries, d0.AddDays(offset), nil)
			assert.GreaterOrEqual(t, r.BestStreak, r.CurrentStreak, "days %v as of +%d", days, offset)
			assert.LessOrEqual(t, r.ActiveDays, r.TotalDays, "days %v as of +%d", days, offset)
			assert.GreaterOrEqual(t, r.TotalDays, 1)
		}
	}
}

func TestAnalyze_CenturiesOldEntry(t *testing.T) {
	old := journal.MustParseDate("1500-01-01")
	asOf := journal.MustParseDate("2026-10-16")

	r := Analyze(onDays(t, old, asOf), asOf, nil)

	assert.Equal(t, old, r.StartDate)
	assert.Equal(t, 192407, r.TotalDays)
	assert.Equal(t, 2, r.ActiveDays)
	assert.InDelta(t, 2.0/192407, r.ActiveRate, 1e-12)
	assert.Equal(t, 1, r.CurrentStreak)
}
