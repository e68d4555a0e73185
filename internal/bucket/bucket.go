// Package bucket classifies the match list into the four mutually
// exclusive display tabs (Past, Current, Upcoming, Cancelled) and
// derives the time window and status filter each tab queries with.
// Everything here is a pure function of the wall clock and the tab;
// the repository layer turns a Window into a WHERE clause.
package bucket

import (
	"errors"
	"time"

	"github.com/turfbook/match-admin/internal/model"
)

// Tab names one of the four match-list buckets.
type Tab string

const (
	TabPast      Tab = "past"
	TabCurrent   Tab = "current"
	TabUpcoming  Tab = "upcoming"
	TabCancelled Tab = "cancelled"
)

// ErrUnknownTab is returned for tab values outside the four buckets.
var ErrUnknownTab = errors.New("unknown match tab")

// Window is the filter a bucket resolves to. From/To bound starts_at
// (nil means unbounded on that side); the exclusivity flags choose
// strict comparison for the bounds that the bucket defines as open.
// Exactly one of Status / StatusNot is ever set: Cancelled filters on
// status equality, the other three on inequality.
type Window struct {
	From          *time.Time
	To            *time.Time
	FromExclusive bool // starts_at > From rather than >=
	ToExclusive   bool // starts_at < To rather than <=
	Status        string
	StatusNot     string
}

const pastFloorDays = 15 // Past never reaches further back than this

// For derives the Window for the given tab at the given instant.
//
// Past covers everything older than now-24h, floored at 15 days back
// so the tab is never unbounded.
//
// Current spans from start-of-today minus 24h up to now. The lower
// bound is anchored to midnight rather than sliding with the clock so
// the tab's contents stay stable across a day. A match from late
// yesterday satisfies both Past and Current until the clock moves
// 24 hours past it; the two tabs share that sliver.
//
// Upcoming is everything strictly after now, unbounded above.
// Cancelled spans the trailing 7 days and is the only bucket filtering
// on status equality.
func For(now time.Time, tab Tab) (Window, error) {
	switch tab {
	case TabPast:
		to := now.Add(-24 * time.Hour)
		from := now.AddDate(0, 0, -pastFloorDays)
		return Window{From: &from, To: &to, ToExclusive: true, StatusNot: model.MatchStatusCancelled}, nil
	case TabCurrent:
		from := startOfDay(now).Add(-24 * time.Hour)
		to := now
		return Window{From: &from, To: &to, StatusNot: model.MatchStatusCancelled}, nil
	case TabUpcoming:
		from := now
		return Window{From: &from, FromExclusive: true, StatusNot: model.MatchStatusCancelled}, nil
	case TabCancelled:
		from := now.AddDate(0, 0, -7)
		to := now
		return Window{From: &from, To: &to, Status: model.MatchStatusCancelled}, nil
	default:
		return Window{}, ErrUnknownTab
	}
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
