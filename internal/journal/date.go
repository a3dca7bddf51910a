package journal

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the accepted spellings of a user-supplied date, tried
// in order. Date pickers emit ISO dates; the day-first form covers
// hand-typed Spanish dates.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	time.RFC3339,
	time.RFC3339Nano,
}

// Date is a civil calendar date with no time or zone. It is comparable
// and safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses s using the accepted layouts.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == time.RFC3339 || layout == time.RFC3339Nano {
				// Keep the calendar date the user wrote, not its UTC shift.
				y, m, d := t.Date()
				return Date{Year: y, Month: m, Day: d}, nil
			}
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// MustParseDate is ParseDate for literals; it panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	return d.Time().Compare(o.Time())
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of whole days from a to b (b - a).
func DaysBetween(a, b Date) int {
	return int((b.Time().Unix() - a.Time().Unix()) / secondsPerDay)
}
