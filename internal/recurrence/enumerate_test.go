package recurrence

import (
	"reflect"
	"testing"
	"time"
)

func slot(start, end string) TimeSlot {
	return TimeSlot{Start: start, End: end}
}

func TestEnumerateDaily(t *testing.T) {
	s := Spec{
		Pattern:   PatternDaily,
		StartDate: "2025-01-01",
		EndDate:   "2025-01-03",
		Slots:     []TimeSlot{slot("18:00", "19:00")},
	}
	got := Enumerate(s)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantDates := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	for i, p := range got {
		if p.Date != wantDates[i] {
			t.Fatalf("got[%d].Date = %s, want %s", i, p.Date, wantDates[i])
		}
		if p.Start != "18:00" || p.End != "19:00" {
			t.Fatalf("got[%d] slot = %s-%s", i, p.Start, p.End)
		}
	}
}

func TestEnumerateWeeklyPicksSelectedWeekdays(t *testing.T) {
	// 2025-01-01 is a Wednesday; Mondays in the range are the 6th and 13th.
	s := Spec{
		Pattern:   PatternWeekly,
		StartDate: "2025-01-01",
		EndDate:   "2025-01-14",
		Days:      []int{int(time.Monday)},
		Slots:     []TimeSlot{slot("20:00", "21:00")},
	}
	got := Enumerate(s)
	want := []string{"2025-01-06", "2025-01-13"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i, p := range got {
		if p.Date != want[i] {
			t.Fatalf("got[%d].Date = %s, want %s", i, p.Date, want[i])
		}
		if p.Weekday != time.Monday {
			t.Fatalf("got[%d].Weekday = %v, want Monday", i, p.Weekday)
		}
	}
}

func TestEnumerateCustomMultipleSlots(t *testing.T) {
	s := Spec{
		Pattern:   PatternCustom,
		StartDate: "2025-03-01", // Saturday
		EndDate:   "2025-03-08", // next Saturday
		Days:      []int{int(time.Saturday)},
		Slots:     []TimeSlot{slot("10:00", "11:00"), slot("17:00", "18:00")},
	}
	got := Enumerate(s)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4 (2 saturdays x 2 slots)", len(got))
	}
	// Slot order within a day is preserved.
	if got[0].Start != "10:00" || got[1].Start != "17:00" {
		t.Fatalf("slot order wrong: %v, %v", got[0], got[1])
	}
}

func TestEnumerateReversedRangeIsEmpty(t *testing.T) {
	s := Spec{
		Pattern:   PatternDaily,
		StartDate: "2025-05-10",
		EndDate:   "2025-05-01",
		Slots:     []TimeSlot{slot("18:00", "19:00")},
	}
	if got := Enumerate(s); len(got) != 0 {
		t.Fatalf("reversed range produced %d instances", len(got))
	}
}

func TestEnumerateSkipsIncompleteSlots(t *testing.T) {
	s := Spec{
		Pattern:   PatternDaily,
		StartDate: "2025-01-01",
		EndDate:   "2025-01-02",
		Slots:     []TimeSlot{slot("18:00", ""), slot("19:00", "20:00")},
	}
	got := Enumerate(s)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (only the complete slot, both days)", len(got))
	}
	for _, p := range got {
		if p.Start != "19:00" {
			t.Fatalf("incomplete slot leaked into %v", p)
		}
	}
}

func TestEnumerateUnparsableDatesAreEmpty(t *testing.T) {
	s := Spec{
		Pattern:   PatternDaily,
		StartDate: "01/01/2025",
		EndDate:   "2025-01-03",
		Slots:     []TimeSlot{slot("18:00", "19:00")},
	}
	if got := Enumerate(s); got != nil {
		t.Fatalf("unparsable start date produced %v", got)
	}
}

func TestEnumerateIsDeterministic(t *testing.T) {
	s := Spec{
		Pattern:   PatternWeekly,
		StartDate: "2025-01-01",
		EndDate:   "2025-02-01",
		Days:      []int{int(time.Tuesday), int(time.Thursday)},
		Slots:     []TimeSlot{slot("18:00", "19:00")},
	}
	a := Enumerate(s)
	b := Enumerate(s)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two enumerations differ:\n%v\n%v", a, b)
	}
}

func TestEnumeratorMemoizesUnchangedSpec(t *testing.T) {
	s := Spec{
		Pattern:   PatternDaily,
		StartDate: "2025-01-01",
		EndDate:   "2025-01-05",
		Slots:     []TimeSlot{slot("18:00", "19:00")},
	}
	var e Enumerator
	first := e.Enumerate(s)
	second := e.Enumerate(s)
	if len(first) == 0 {
		t.Fatalf("expected instances")
	}
	if &first[0] != &second[0] {
		t.Fatalf("unchanged spec should return the cached slice")
	}

	s.EndDate = "2025-01-06"
	third := e.Enumerate(s)
	if len(third) != len(first)+1 {
		t.Fatalf("changed spec must recompute: len=%d want %d", len(third), len(first)+1)
	}
}
