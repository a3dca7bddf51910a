// Package query filters a journal by effective date range and category,
// orders the result, and groups it for the history view.
package query

import (
	"cmp"
	"slices"

	"github.com/HendryAvila/azimut/internal/journal"
)

// Filter selects entries. Nil bounds are open; an empty Categories list
// keeps every category. Both bounds are inclusive.
type Filter struct {
	Start      *journal.Date
	End        *journal.Date
	Categories []journal.Category
}

// Between is a convenience constructor for a closed date range.
func Between(start, end journal.Date) Filter {
	return Filter{Start: &start, End: &end}
}

// WithCategories returns a copy of f restricted to cats.
func (f Filter) WithCategories(cats ...journal.Category) Filter {
	f.Categories = append([]journal.Category(nil), cats...)
	return f
}

// Match reports whether e passes the filter.
func (f Filter) Match(e journal.Entry) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, e.Category) {
		return false
	}
	d := e.Effective()
	if f.Start != nil && d.Before(*f.Start) {
		return false
	}
	if f.End != nil && d.After(*f.End) {
		return false
	}
	return true
}

// Query returns the entries matching f ordered by category, then
// effective date, then recorded_at. Ties keep append order. The input
// slice is not modified.
func Query(entries []journal.Entry, f Filter) []journal.Entry {
	out := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, compareEntries)
	return out
}

func compareEntries(a, b journal.Entry) int {
	if c := cmp.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	if c := a.Effective().Compare(b.Effective()); c != 0 {
		return c
	}
	return a.RecordedAt.Compare(b.RecordedAt)
}

// --- Grouping ---

// DayGroup holds the entries of one effective date.
type DayGroup struct {
	Date    journal.Date
	Entries []journal.Entry
}

// CategoryGroup holds one category's entries. The closing category uses
// Closing, a single undated bucket; every other category uses Days.
type CategoryGroup struct {
	Category journal.Category
	Days     []DayGroup
	Closing  []journal.Entry
}

// Len returns the number of entries in the group.
func (g CategoryGroup) Len() int {
	n := len(g.Closing)
	for _, d := range g.Days {
		n += len(d.Entries)
	}
	return n
}

// Entries flattens the group back into Query order.
func (g CategoryGroup) Entries() []journal.Entry {
	out := make([]journal.Entry, 0, g.Len())
	for _, d := range g.Days {
		out = append(out, d.Entries...)
	}
	return append(out, g.Closing...)
}

// Group buckets Query output by category, then by effective date. It
// never reorders entries: groups appear in first-seen order, which for
// Query output is ascending category and date.
func Group(entries []journal.Entry) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[journal.Category]int)

	for _, e := range entries {
		gi, ok := index[e.Category]
		if !ok {
			gi = len(groups)
			index[e.Category] = gi
			groups = append(groups, CategoryGroup{Category: e.Category})
		}
		g := &groups[gi]

		if e.Category.IsClosing() {
			g.Closing = append(g.Closing, e)
			continue
		}

		d := e.Effective()
		if n := len(g.Days); n > 0 && g.Days[n-1].Date == d {
			g.Days[n-1].Entries = append(g.Days[n-1].Entries, e)
			continue
		}
		g.Days = append(g.Days, DayGroup{Date: d, Entries: []journal.Entry{e}})
	}
	return groups
}

// --- Distribution ---

// CategoryCount is the number of entries recorded in one category.
type CategoryCount struct {
	Category journal.Category
	Count    int
}

// Distribution counts entries per category, ascending by category.
// Categories with no entries are omitted.
func Distribution(entries []journal.Entry) []CategoryCount {
	counts := make(map[journal.Category]int)
	for _, e := range entries {
		counts[e.Category]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	slices.SortFunc(out, func(a, b CategoryCount) int { return cmp.Compare(a.Category, b.Category) })
	return out
}

// ActiveDates returns the distinct effective dates present in entries.
func ActiveDates(entries []journal.Entry) map[journal.Date]struct{} {
	set := make(map[journal.Date]struct{}, len(entries))
	for _, e := range entries {
		set[e.Effective()] = struct{}{}
	}
	return set
}
