// Package journal defines the data model shared by every other package:
// the journal entry, its category (program block), the calendar date used
// for grouping and streaks, and the optional per-partition goal profile.
//
// The package holds no state. Persistence lives in internal/store and the
// derived signals live in query, adherence, patterns and recommend.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// --- Category enum ---

// Category identifies the program block an entry belongs to.
type Category int

const (
	MinCategory Category = 1
	MaxCategory Category = 9

	// ClosingCategory is the one-time closing reflection. It is grouped
	// as a single bucket rather than per date.
	ClosingCategory Category = 9
)

// ErrInvalidCategory is returned when a category is outside 1..9.
var ErrInvalidCategory = errors.New("invalid category")

var categoryNames = map[Category]string{
	1: "Vía Negativa",
	2: "Ritmos Circadianos",
	3: "Marcadores Somáticos",
	4: "Registro de Precisión",
	5: "Gestión de Recursos",
	6: "Detector de Sesgos",
	7: "El Abogado del Diablo",
	8: "Antifragilidad",
	9: "El Nuevo Rumbo",
}

// ValidateCategory returns an error if c is not a known block.
func ValidateCategory(c Category) error {
	if c < MinCategory || c > MaxCategory {
		return fmt.Errorf("%w %d: must be between %d and %d", ErrInvalidCategory, c, MinCategory, MaxCategory)
	}
	return nil
}

// Name returns the block title, or "Bloque N" for unknown values.
func (c Category) Name() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Bloque %d", int(c))
}

// IsClosing reports whether c is the closing reflection block.
func (c Category) IsClosing() bool {
	return c == ClosingCategory
}

// Categories returns every valid category in ascending order.
func Categories() []Category {
	out := make([]Category, 0, MaxCategory-MinCategory+1)
	for c := MinCategory; c <= MaxCategory; c++ {
		out = append(out, c)
	}
	return out
}

// --- Entry ---

// Entry is the atomic, immutable unit of a journal.
//
// EffectiveDate is a true optional: nil means the user supplied nothing,
// while a pointer to "" means an empty string was supplied. Both resolve
// to the date of RecordedAt.
type Entry struct {
	RecordedAt    time.Time         `json:"recorded_at"`
	Category      Category          `json:"category"`
	EffectiveDate *string           `json:"effective_date,omitempty"`
	Label         string            `json:"label"`
	Value         string            `json:"value"`
	Annotations   map[string]string `json:"annotations"`
}

// NewEntry builds an entry stamped at recordedAt (normalized to UTC).
// A blank effectiveDate is stored as absent: callers pass the date as
// typed, and "no date" and "empty date" mean the same thing to them.
// Entries that already carry a pointer to "" (logs written by older
// clients) are loaded and saved unchanged; build those as literals.
func NewEntry(recordedAt time.Time, category Category, effectiveDate, label, value string, annotations map[string]string) (Entry, error) {
	if err := ValidateCategory(category); err != nil {
		return Entry{}, err
	}

	e := Entry{
		RecordedAt: recordedAt.UTC(),
		Category:   category,
		Label:      strings.TrimSpace(label),
		Value:      value,
	}
	if d := strings.TrimSpace(effectiveDate); d != "" {
		e.EffectiveDate = &d
	}
	if len(annotations) > 0 {
		e.Annotations = make(map[string]string, len(annotations))
		for k, v := range annotations {
			e.Annotations[k] = v
		}
	}
	return e, nil
}

// Effective returns the calendar date attributed to the entry: the
// supplied effective date when it parses, otherwise the UTC date of
// RecordedAt.
func (e Entry) Effective() Date {
	if d, ok := e.SuppliedDate(); ok {
		return d
	}
	return DateOf(e.RecordedAt)
}

// SuppliedDate returns the parsed effective date and whether one was
// supplied and resolvable.
func (e Entry) SuppliedDate() (Date, bool) {
	if e.EffectiveDate == nil {
		return Date{}, false
	}
	d, err := ParseDate(*e.EffectiveDate)
	if err != nil {
		return Date{}, false
	}
	return d, true
}

// Annotation returns the annotation for key, or "".
func (e Entry) Annotation(key string) string {
	if e.Annotations == nil {
		return ""
	}
	return e.Annotations[key]
}

// NextStamp returns the timestamp to assign to a new entry appended after
// entries, keeping RecordedAt non-decreasing in storage order even if the
// wall clock steps backwards.
func NextStamp(entries []Entry, now time.Time) time.Time {
	now = now.UTC()
	if len(entries) == 0 {
		return now
	}
	last := entries[len(entries)-1].RecordedAt
	if now.Before(last) {
		return last
	}
	return now
}

// --- Profile ---

// Profile is the optional per-partition goal configuration. It only
// contextualizes adherence metrics; it never gates them.
type Profile struct {
	StartDate           *string `json:"start_date,omitempty"`
	TargetDaysPerWeek   int     `json:"target_days_per_week"`
	TargetEntriesPerDay int     `json:"target_entries_per_day"`
}

// Validate returns an error describing the first invalid field.
func (p Profile) Validate() error {
	if p.TargetDaysPerWeek < 0 || p.TargetDaysPerWeek > 7 {
		return fmt.Errorf("target days per week %d: must be between 0 and 7", p.TargetDaysPerWeek)
	}
	if p.TargetEntriesPerDay < 0 {
		return fmt.Errorf("target entries per day %d: must not be negative", p.TargetEntriesPerDay)
	}
	if p.StartDate != nil {
		if _, err := ParseDate(*p.StartDate); err != nil {
			return fmt.Errorf("start date: %w", err)
		}
	}
	return nil
}

// Start returns the declared program start date, if any.
func (p *Profile) Start() (Date, bool) {
	if p == nil || p.StartDate == nil {
		return Date{}, false
	}
	d, err := ParseDate(*p.StartDate)
	if err != nil {
		return Date{}, false
	}
	return d, true
}
