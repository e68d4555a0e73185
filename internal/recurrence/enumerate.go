// Package recurrence turns a recurring-match specification into the
// concrete (date, start, end) instances that bulk creation will
// produce, so an operator can verify the expansion before anything is
// written. Enumeration is pure and deterministic: the same spec always
// yields the same sequence.
package recurrence

import (
	"time"
)

// Pattern selects how days inside the date range are included.
type Pattern string

const (
	PatternDaily  Pattern = "daily"
	PatternWeekly Pattern = "weekly"
	PatternCustom Pattern = "custom"
)

// DateLayout is the calendar-day format used throughout the package.
// Dates are naive local calendar days; no timezone conversion happens
// during enumeration.
const DateLayout = "2006-01-02"

// TimeSlot is one start/end pair within a day, "HH:mm" strings. Slots
// with an empty start or end are skipped during enumeration, they are
// not an error.
type TimeSlot struct {
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

// Spec is the operator-entered recurrence description. Days holds
// weekday indices (0=Sunday..6=Saturday); it is ignored for the daily
// pattern and required non-empty otherwise.
type Spec struct {
	Pattern   Pattern    `json:"pattern"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Days      []int      `json:"daysOfWeek"`
	Slots     []TimeSlot `json:"timeSlots"`
}

// Preview is one concrete instance derived from a Spec.
type Preview struct {
	Date    string       `json:"date"`
	Start   string       `json:"startTime"`
	End     string       `json:"endTime"`
	Weekday time.Weekday `json:"dayOfWeek"`
}

// Enumerate expands the spec into every concrete instance, days in
// ascending order and slots in their original order within a day.
// A reversed or unparsable date range yields an empty sequence rather
// than an error; so does a spec whose every slot is incomplete.
func Enumerate(s Spec) []Preview {
	start, err := time.Parse(DateLayout, s.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, s.EndDate)
	if err != nil {
		return nil
	}

	days := make(map[time.Weekday]bool, len(s.Days))
	for _, d := range s.Days {
		if d >= 0 && d <= 6 {
			days[time.Weekday(d)] = true
		}
	}

	var out []Preview
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if s.Pattern != PatternDaily && !days[d.Weekday()] {
			continue
		}
		for _, slot := range s.Slots {
			if slot.Start == "" || slot.End == "" {
				continue
			}
			out = append(out, Preview{
				Date:    d.Format(DateLayout),
				Start:   slot.Start,
				End:     slot.End,
				Weekday: d.Weekday(),
			})
		}
	}
	return out
}

// Enumerator memoizes Enumerate on the last input spec. The memo is a
// render-path convenience only; correctness never depends on it.
type Enumerator struct {
	last   *Spec
	cached []Preview
}

// Enumerate returns the cached expansion when the spec is unchanged
// since the previous call, recomputing otherwise.
func (e *Enumerator) Enumerate(s Spec) []Preview {
	if e.last != nil && specEqual(*e.last, s) {
		return e.cached
	}
	cp := s
	cp.Days = append([]int(nil), s.Days...)
	cp.Slots = append([]TimeSlot(nil), s.Slots...)
	e.last = &cp
	e.cached = Enumerate(s)
	return e.cached
}

func specEqual(a, b Spec) bool {
	if a.Pattern != b.Pattern || a.StartDate != b.StartDate || a.EndDate != b.EndDate {
		return false
	}
	if len(a.Days) != len(b.Days) || len(a.Slots) != len(b.Slots) {
		return false
	}
	for i := range a.Days {
		if a.Days[i] != b.Days[i] {
			return false
		}
	}
	for i := range a.Slots {
		if a.Slots[i] != b.Slots[i] {
			return false
		}
	}
	return true
}
