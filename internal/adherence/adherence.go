// Package adherence computes activity streaks and the activity rate of a
// journal from the set of dates on which something was recorded.
package adherence

import (
	"math"

	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/query"
)

// Report is the adherence summary of a journal as of a given day.
//
// HasData is false when there were no entries at all; every other field
// is then zero and StartDate is undefined. This keeps "nothing recorded
// yet" distinct from "one day of activity".
type Report struct {
	HasData       bool
	StartDate     journal.Date
	AsOf          journal.Date
	TotalDays     int
	ActiveDays    int
	ActiveRate    float64
	CurrentStreak int
	BestStreak    int
	Target        *TargetProgress
}

// TargetProgress compares the window against the goals of a profile.
// It is informative only.
type TargetProgress struct {
	DaysPerWeek        int
	ExpectedActiveDays int
	DaysOnTrack        bool

	EntriesPerDay          int
	AvgEntriesPerActiveDay float64
	EntriesOnTrack         bool
}

// Analyze builds the report for entries as of asOf. A profile start date
// only moves the window start later, never earlier than the first entry.
func Analyze(entries []journal.Entry, asOf journal.Date, profile *journal.Profile) Report {
	if len(entries) == 0 {
		return Report{}
	}

	start := entries[0].Effective()
	for _, e := range entries[1:] {
		if d := e.Effective(); d.Before(start) {
			start = d
		}
	}
	if declared, ok := profile.Start(); ok && declared.After(start) {
		start = declared
	}

	total := journal.DaysBetween(start, asOf) + 1
	if total < 1 {
		total = 1
	}

	active := query.ActiveDates(entries)
	activeDays, windowEntries := 0, 0
	for d := range active {
		if inWindow(d, start, asOf) {
			activeDays++
		}
	}
	for _, e := range entries {
		if inWindow(e.Effective(), start, asOf) {
			windowEntries++
		}
	}

	r := Report{
		HasData:       true,
		StartDate:     start,
		AsOf:          asOf,
		TotalDays:     total,
		ActiveDays:    activeDays,
		ActiveRate:    float64(activeDays) / float64(total),
		CurrentStreak: currentStreak(active, start, asOf),
		BestStreak:    bestStreak(active, start, asOf),
	}
	if profile != nil {
		r.Target = targetProgress(*profile, total, activeDays, windowEntries)
	}
	return r
}

func inWindow(d, start, end journal.Date) bool {
	return !d.Before(start) && !d.After(end)
}

// currentStreak walks back from asOf, stopping at the first gap or once
// it passes start.
func currentStreak(active map[journal.Date]struct{}, start, asOf journal.Date) int {
	n := 0
	for d := asOf; !d.Before(start); d = d.AddDays(-1) {
		if _, ok := active[d]; !ok {
			break
		}
		n++
	}
	return n
}

func bestStreak(active map[journal.Date]struct{}, start, asOf journal.Date) int {
	best, run := 0, 0
	for d := start; !d.After(asOf); d = d.AddDays(1) {
		if _, ok := active[d]; ok {
			run++
			best = max(best, run)
			continue
		}
		run = 0
	}
	return best
}

func targetProgress(p journal.Profile, totalDays, activeDays, windowEntries int) *TargetProgress {
	if p.TargetDaysPerWeek == 0 && p.TargetEntriesPerDay == 0 {
		return nil
	}

	tp := &TargetProgress{
		DaysPerWeek:   p.TargetDaysPerWeek,
		EntriesPerDay: p.TargetEntriesPerDay,
	}
	if p.TargetDaysPerWeek > 0 {
		tp.ExpectedActiveDays = int(math.Ceil(float64(totalDays) * float64(p.TargetDaysPerWeek) / 7))
		tp.ExpectedActiveDays = min(tp.ExpectedActiveDays, totalDays)
		tp.DaysOnTrack = activeDays >= tp.ExpectedActiveDays
	}
	if activeDays > 0 {
		tp.AvgEntriesPerActiveDay = float64(windowEntries) / float64(activeDays)
	}
	if p.TargetEntriesPerDay > 0 {
		tp.EntriesOnTrack = tp.AvgEntriesPerActiveDay >= float64(p.TargetEntriesPerDay)
	}
	return tp
}
