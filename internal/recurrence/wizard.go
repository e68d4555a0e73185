package recurrence

import "errors"

// The recurring-match wizard is a small finite-state machine instead of
// a bag of screen-local variables: the states are named, there is one
// transition function, and the submission guards run inside it, so the
// flow is testable without any rendering.

// State names one step of the wizard.
type State int

const (
	CollectingPattern State = iota
	CollectingTimeSlots
	CollectingMatchDetails
	Previewing
	Confirming
	Submitting
	Done
	Failed
)

// String returns the state name for logs and assertions.
func (s State) String() string {
	switch s {
	case CollectingPattern:
		return "collecting_pattern"
	case CollectingTimeSlots:
		return "collecting_time_slots"
	case CollectingMatchDetails:
		return "collecting_match_details"
	case Previewing:
		return "previewing"
	case Confirming:
		return "confirming"
	case Submitting:
		return "submitting"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Event drives the wizard forward or back.
type Event int

const (
	EventNext Event = iota
	EventBack
	EventSubmit
	EventSucceeded
	EventFailed
)

// ErrInvalidTransition is returned when the event is not legal in the
// current state (e.g. EventSubmit while still collecting the pattern).
var ErrInvalidTransition = errors.New("invalid wizard transition")

// Wizard carries the state and the spec under construction. Details
// holds the shared match attributes applied to every generated
// instance.
type Wizard struct {
	State   State
	Spec    Spec
	Details MatchDetails
}

// MatchDetails are the attributes every generated match shares.
type MatchDetails struct {
	VenueID         uint64 `json:"venueId"`
	FootballChiefID uint64 `json:"footballChiefId"`
	MatchType       string `json:"matchType"`
	PlayerCapacity  uint32 `json:"playerCapacity"`
	SlotPriceCents  uint32 `json:"slotPrice"`
	OfferPriceCents uint32 `json:"offerPrice"`
}

// Advance applies one event. Guard validation runs when entering
// Previewing and again on EventSubmit, so an edited-then-broken spec
// cannot slip through the confirm step. The returned error is either a
// guard error (state unchanged) or ErrInvalidTransition.
func (w *Wizard) Advance(ev Event) error {
	switch w.State {
	case CollectingPattern:
		if ev != EventNext {
			return ErrInvalidTransition
		}
		w.State = CollectingTimeSlots
	case CollectingTimeSlots:
		switch ev {
		case EventNext:
			w.State = CollectingMatchDetails
		case EventBack:
			w.State = CollectingPattern
		default:
			return ErrInvalidTransition
		}
	case CollectingMatchDetails:
		switch ev {
		case EventNext:
			if err := Validate(w.Spec); err != nil {
				return err
			}
			w.State = Previewing
		case EventBack:
			w.State = CollectingTimeSlots
		default:
			return ErrInvalidTransition
		}
	case Previewing:
		switch ev {
		case EventNext:
			w.State = Confirming
		case EventBack:
			w.State = CollectingMatchDetails
		default:
			return ErrInvalidTransition
		}
	case Confirming:
		switch ev {
		case EventSubmit:
			if err := Validate(w.Spec); err != nil {
				return err
			}
			w.State = Submitting
		case EventBack:
			w.State = Previewing
		default:
			return ErrInvalidTransition
		}
	case Submitting:
		switch ev {
		case EventSucceeded:
			w.State = Done
		case EventFailed:
			w.State = Failed
		default:
			return ErrInvalidTransition
		}
	default: // Done and Failed are terminal
		return ErrInvalidTransition
	}
	return nil
}
