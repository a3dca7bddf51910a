package journaltools

import (
	"fmt"
	"slices"
	"strings"

	"github.com/HendryAvila/azimut/internal/adherence"
	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/query"
	"github.com/HendryAvila/azimut/internal/session"
)

// ─── History ────────────────────────────────────────────────────────────────

// FormatEntry renders one entry as a markdown list item.
func FormatEntry(e journal.Entry) string {
	var b strings.Builder
	b.WriteString("- ")
	if e.Label != "" {
		b.WriteString("**" + e.Label + "**: ")
	}
	b.WriteString(e.Value)

	keys := make([]string, 0, len(e.Annotations))
	for k, v := range e.Annotations {
		if v != "" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  - %s: %s", k, e.Annotations[k])
	}
	return b.String()
}

// FormatHistory renders grouped entries: one section per block, one
// subsection per effective date, and a single section for the closing
// reflection.
func FormatHistory(groups []query.CategoryGroup) string {
	if len(groups) == 0 {
		return "No entries yet."
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## Bloque %d: %s (%d)\n", int(g.Category), g.Category.Name(), g.Len())

		for _, d := range g.Days {
			fmt.Fprintf(&b, "\n### %s\n", d.Date)
			for _, e := range d.Entries {
				b.WriteString(FormatEntry(e) + "\n")
			}
		}
		if len(g.Closing) > 0 {
			b.WriteString("\n")
			for _, e := range g.Closing {
				b.WriteString(FormatEntry(e) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ─── Insights ───────────────────────────────────────────────────────────────

// FormatInsights renders the derived signals of a window.
func FormatInsights(in session.Insights) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Insights as of %s\n\n", in.AsOf)
	fmt.Fprintf(&b, "Entries in window: %d\n", in.Entries)

	b.WriteString("\n### Adherence\n")
	b.WriteString(formatAdherence(in.Adherence))

	if len(in.Distribution) > 0 {
		b.WriteString("\n### Blocks\n")
		for _, c := range in.Distribution {
			fmt.Fprintf(&b, "- Bloque %d (%s): %d\n", int(c.Category), c.Category.Name(), c.Count)
		}
	}

	b.WriteString("\n### Patterns\n")
	fmt.Fprintf(&b, "- Dominant emotion: %s\n", orDash(in.Patterns.DominantValue, in.Patterns.HasValue))
	fmt.Fprintf(&b, "- Recurring context: %s\n", orDash(in.Patterns.DominantContext, in.Patterns.HasContext))

	b.WriteString("\n### Recommendations\n")
	for _, r := range in.Recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatAdherence(r adherence.Report) string {
	if !r.HasData {
		return "No activity recorded yet.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- Since: %s (%d days)\n", r.StartDate, r.TotalDays)
	fmt.Fprintf(&b, "- Active days: %d (%.0f%%)\n", r.ActiveDays, r.ActiveRate*100)
	fmt.Fprintf(&b, "- Current streak: %d\n", r.CurrentStreak)
	fmt.Fprintf(&b, "- Best streak: %d\n", r.BestStreak)

	if t := r.Target; t != nil {
		if t.DaysPerWeek > 0 {
			fmt.Fprintf(&b, "- Goal %d days/week: %d of %d expected days %s\n",
				t.DaysPerWeek, r.ActiveDays, t.ExpectedActiveDays, onTrack(t.DaysOnTrack))
		}
		if t.EntriesPerDay > 0 {
			fmt.Fprintf(&b, "- Goal %d entries/day: %.1f per active day %s\n",
				t.EntriesPerDay, t.AvgEntriesPerActiveDay, onTrack(t.EntriesOnTrack))
		}
	}
	return b.String()
}

func onTrack(ok bool) string {
	if ok {
		return "(on track)"
	}
	return "(behind)"
}

func orDash(v string, ok bool) string {
	if !ok {
		return "—"
	}
	return v
}

// FormatProfile renders a goal profile.
func FormatProfile(p *journal.Profile) string {
	if p == nil {
		return "No profile saved."
	}
	start := "first entry"
	if p.StartDate != nil {
		start = *p.StartDate
	}
	return fmt.Sprintf("Start date: %s\nTarget days per week: %d\nTarget entries per day: %d",
		start, p.TargetDaysPerWeek, p.TargetEntriesPerDay)
}
