package bucket

import (
	"errors"
	"testing"
	"time"

	"github.com/turfbook/match-admin/internal/model"
)

// now is fixed across the tests so window math is reproducible.
var now = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

// contains reports whether a match with the given starts_at and status
// satisfies the window, mirroring the WHERE clause the repository
// builds.
func contains(w Window, startsAt time.Time, status string) bool {
	if w.From != nil {
		if w.FromExclusive {
			if !startsAt.After(*w.From) {
				return false
			}
		} else if startsAt.Before(*w.From) {
			return false
		}
	}
	if w.To != nil {
		if w.ToExclusive {
			if !startsAt.Before(*w.To) {
				return false
			}
		} else if startsAt.After(*w.To) {
			return false
		}
	}
	if w.Status != "" && status != w.Status {
		return false
	}
	if w.StatusNot != "" && status == w.StatusNot {
		return false
	}
	return true
}

func TestPastWindowClampsAtFifteenDays(t *testing.T) {
	w, err := For(now, TabPast)
	if err != nil {
		t.Fatalf("For(past): %v", err)
	}

	wantTo := now.Add(-24 * time.Hour) // 2025-06-19T12:00:00Z
	if !w.To.Equal(wantTo) {
		t.Fatalf("to = %v, want %v", w.To, wantTo)
	}
	if !w.ToExclusive {
		t.Fatalf("past upper bound must be exclusive")
	}
	wantFrom := now.AddDate(0, 0, -15) // 2025-06-05T12:00:00Z
	if !w.From.Equal(wantFrom) {
		t.Fatalf("from = %v, want %v", w.From, wantFrom)
	}

	// A 20-hour-old match is still inside the 24-hour grace window.
	if contains(w, now.Add(-20*time.Hour), model.MatchStatusActive) {
		t.Fatalf("20-hour-old match must not be past yet")
	}
	// A 3-day-old match is squarely past.
	if !contains(w, now.AddDate(0, 0, -3), model.MatchStatusActive) {
		t.Fatalf("3-day-old match must be past")
	}
	// The 15-day floor cuts off anything older.
	if contains(w, now.AddDate(0, 0, -16), model.MatchStatusActive) {
		t.Fatalf("16-day-old match must be beyond the floor")
	}
	// Exactly now-24h belongs to Current, not Past.
	if contains(w, wantTo, model.MatchStatusActive) {
		t.Fatalf("match at exactly now-24h must not be past")
	}
}

func TestCurrentWindowAnchorsToMidnight(t *testing.T) {
	w, err := For(now, TabCurrent)
	if err != nil {
		t.Fatalf("For(current): %v", err)
	}

	wantFrom := time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC) // midnight-24h
	if !w.From.Equal(wantFrom) {
		t.Fatalf("from = %v, want %v", w.From, wantFrom)
	}
	if !w.To.Equal(now) {
		t.Fatalf("to = %v, want %v", w.To, now)
	}

	// The anchor holds anywhere inside the same day: a later clock the
	// same afternoon keeps the identical lower bound.
	later, err := For(now.Add(5*time.Hour), TabCurrent)
	if err != nil {
		t.Fatalf("For(current) later: %v", err)
	}
	if !later.From.Equal(wantFrom) {
		t.Fatalf("later from = %v, want stable %v", later.From, wantFrom)
	}
}

func TestUpcomingIsStrictlyFuture(t *testing.T) {
	w, err := For(now, TabUpcoming)
	if err != nil {
		t.Fatalf("For(upcoming): %v", err)
	}
	if w.To != nil {
		t.Fatalf("upcoming must be unbounded above, got to=%v", w.To)
	}
	if contains(w, now, model.MatchStatusActive) {
		t.Fatalf("a match starting exactly now must not be upcoming")
	}
	if !contains(w, now.Add(time.Second), model.MatchStatusActive) {
		t.Fatalf("a match one second ahead must be upcoming")
	}
}

func TestBucketsAreDisjoint(t *testing.T) {
	tabs := []Tab{TabPast, TabCurrent, TabUpcoming, TabCancelled}
	windows := make(map[Tab]Window, len(tabs))
	for _, tab := range tabs {
		w, err := For(now, tab)
		if err != nil {
			t.Fatalf("For(%s): %v", tab, err)
		}
		windows[tab] = w
	}

	// Sample matches across the whole relevant range, both statuses.
	// Past and Current share matches from late yesterday (between
	// midnight-24h and now-24h); no other pair of tabs may overlap.
	starts := []time.Time{
		now.AddDate(0, 0, -20),
		now.AddDate(0, 0, -10),
		now.AddDate(0, 0, -2),
		now.Add(-25 * time.Hour),
		now.Add(-24 * time.Hour),
		now.Add(-12 * time.Hour),
		now,
		now.Add(time.Hour),
		now.AddDate(0, 0, 3),
	}
	for _, s := range starts {
		for _, status := range []string{model.MatchStatusActive, model.MatchStatusCancelled} {
			var hits []Tab
			for _, tab := range tabs {
				if contains(windows[tab], s, status) {
					hits = append(hits, tab)
				}
			}
			if len(hits) <= 1 {
				continue
			}
			if len(hits) == 2 && hits[0] == TabPast && hits[1] == TabCurrent {
				continue
			}
			t.Fatalf("match (starts=%v status=%s) appears in %v", s, status, hits)
		}
	}
}

// The one sanctioned overlap: a late-yesterday match shows in Past and
// Current at once, and nowhere else.
func TestPastCurrentShareLateYesterday(t *testing.T) {
	past, err := For(now, TabPast)
	if err != nil {
		t.Fatalf("For(past): %v", err)
	}
	current, err := For(now, TabCurrent)
	if err != nil {
		t.Fatalf("For(current): %v", err)
	}

	lateYesterday := now.Add(-25 * time.Hour) // after midnight-24h, before now-24h
	if !contains(past, lateYesterday, model.MatchStatusActive) {
		t.Fatalf("late-yesterday match must be past")
	}
	if !contains(current, lateYesterday, model.MatchStatusActive) {
		t.Fatalf("late-yesterday match must also be current")
	}
}

func TestCancelledFiltersOnEquality(t *testing.T) {
	w, err := For(now, TabCancelled)
	if err != nil {
		t.Fatalf("For(cancelled): %v", err)
	}
	if w.Status != model.MatchStatusCancelled {
		t.Fatalf("status = %q, want %q", w.Status, model.MatchStatusCancelled)
	}
	if w.StatusNot != "" {
		t.Fatalf("cancelled must not also carry a StatusNot filter")
	}
	if contains(w, now.Add(-time.Hour), model.MatchStatusActive) {
		t.Fatalf("active match must not land in cancelled")
	}
}

func TestUnknownTab(t *testing.T) {
	if _, err := For(now, Tab("archived")); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("err = %v, want ErrUnknownTab", err)
	}
}
