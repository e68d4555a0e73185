package recurrence

import "errors"

// Submission guard errors, surfaced verbatim to the operator. The
// checks run in a fixed order and stop at the first failure, so a spec
// missing both dates and weekdays reports only the date problem.
var (
	ErrDatesMissing   = errors.New("start and end dates are required")
	ErrSlotIncomplete = errors.New("every time slot needs a start and an end")
	ErrNoDaysSelected = errors.New("select at least one day of the week")
	ErrNothingToBook  = errors.New("the selection produces no matches")
)

// Validate runs the pre-submission guards in order: dates present,
// slots complete, weekdays selected (non-daily patterns), expansion
// non-empty. The first failing guard aborts; nil means the spec may be
// submitted.
func Validate(s Spec) error {
	if s.StartDate == "" || s.EndDate == "" {
		return ErrDatesMissing
	}
	for _, slot := range s.Slots {
		if slot.Start == "" || slot.End == "" {
			return ErrSlotIncomplete
		}
	}
	if s.Pattern != PatternDaily && len(s.Days) == 0 {
		return ErrNoDaysSelected
	}
	if len(Enumerate(s)) == 0 {
		return ErrNothingToBook
	}
	return nil
}
