package recurrence

import (
	"errors"
	"testing"
	"time"
)

func validSpec() Spec {
	return Spec{
		Pattern:   PatternWeekly,
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
		Days:      []int{int(time.Friday)},
		Slots:     []TimeSlot{{Start: "18:00", End: "19:00"}},
	}
}

func TestValidateGuardOrder(t *testing.T) {
	// A spec missing both dates and weekdays reports only the date
	// problem: the guards run in a fixed order and stop at the first
	// failure.
	s := Spec{Pattern: PatternWeekly, Slots: []TimeSlot{{Start: "18:00", End: "19:00"}}}
	if err := Validate(s); !errors.Is(err, ErrDatesMissing) {
		t.Fatalf("err = %v, want ErrDatesMissing", err)
	}

	s.StartDate = "2025-01-01"
	s.EndDate = "2025-01-31"
	s.Slots = []TimeSlot{{Start: "18:00"}}
	if err := Validate(s); !errors.Is(err, ErrSlotIncomplete) {
		t.Fatalf("err = %v, want ErrSlotIncomplete", err)
	}

	s.Slots = []TimeSlot{{Start: "18:00", End: "19:00"}}
	if err := Validate(s); !errors.Is(err, ErrNoDaysSelected) {
		t.Fatalf("err = %v, want ErrNoDaysSelected", err)
	}

	// Weekday selected but outside the range: expansion is empty.
	s.Days = []int{int(time.Monday)}
	s.EndDate = "2025-01-01" // a Wednesday, single day
	if err := Validate(s); !errors.Is(err, ErrNothingToBook) {
		t.Fatalf("err = %v, want ErrNothingToBook", err)
	}

	if err := Validate(validSpec()); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestValidateDailyIgnoresDays(t *testing.T) {
	s := validSpec()
	s.Pattern = PatternDaily
	s.Days = nil
	if err := Validate(s); err != nil {
		t.Fatalf("daily spec without weekdays rejected: %v", err)
	}
}

func TestWizardHappyPath(t *testing.T) {
	w := Wizard{Spec: validSpec()}
	steps := []struct {
		ev   Event
		want State
	}{
		{EventNext, CollectingTimeSlots},
		{EventNext, CollectingMatchDetails},
		{EventNext, Previewing},
		{EventNext, Confirming},
		{EventSubmit, Submitting},
		{EventSucceeded, Done},
	}
	for i, step := range steps {
		if err := w.Advance(step.ev); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if w.State != step.want {
			t.Fatalf("step %d: state = %s, want %s", i, w.State, step.want)
		}
	}
	// Done is terminal.
	if err := w.Advance(EventNext); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("advance from Done: err = %v, want ErrInvalidTransition", err)
	}
}

func TestWizardGuardsBlockPreview(t *testing.T) {
	w := Wizard{Spec: Spec{Pattern: PatternWeekly}}
	if err := w.Advance(EventNext); err != nil {
		t.Fatalf("to time slots: %v", err)
	}
	if err := w.Advance(EventNext); err != nil {
		t.Fatalf("to match details: %v", err)
	}
	if err := w.Advance(EventNext); !errors.Is(err, ErrDatesMissing) {
		t.Fatalf("entering preview: err = %v, want ErrDatesMissing", err)
	}
	if w.State != CollectingMatchDetails {
		t.Fatalf("failed guard must leave state unchanged, got %s", w.State)
	}
}

func TestWizardRevalidatesOnSubmit(t *testing.T) {
	w := Wizard{Spec: validSpec()}
	for _, ev := range []Event{EventNext, EventNext, EventNext, EventNext} {
		if err := w.Advance(ev); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if w.State != Confirming {
		t.Fatalf("state = %s, want Confirming", w.State)
	}

	// Break the spec after it passed preview; submit must catch it.
	w.Spec.Days = nil
	if err := w.Advance(EventSubmit); !errors.Is(err, ErrNoDaysSelected) {
		t.Fatalf("submit: err = %v, want ErrNoDaysSelected", err)
	}
	if w.State != Confirming {
		t.Fatalf("failed submit must stay in Confirming, got %s", w.State)
	}
}

func TestWizardBackSteps(t *testing.T) {
	w := Wizard{Spec: validSpec(), State: Previewing}
	if err := w.Advance(EventBack); err != nil {
		t.Fatalf("back: %v", err)
	}
	if w.State != CollectingMatchDetails {
		t.Fatalf("state = %s, want CollectingMatchDetails", w.State)
	}
	if err := w.Advance(EventSubmit); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("submit while collecting: err = %v, want ErrInvalidTransition", err)
	}
}
