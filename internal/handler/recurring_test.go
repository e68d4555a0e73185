package handler

import (
	"testing"
	"time"

	"github.com/turfbook/match-admin/internal/recurrence"
)

func recurringDetails() recurringReq {
	return recurringReq{
		VenueID:         3,
		FootballChiefID: 9,
		MatchType:       "recorded",
		PlayerCapacity:  10,
		SlotPrice:       50000,
		OfferPrice:      40000,
	}
}

func TestExpandRowsBuildsMatches(t *testing.T) {
	req := recurringDetails()
	previews := []recurrence.Preview{
		{Date: "2025-07-01", Start: "18:00", End: "19:00"},
		{Date: "2025-07-02", Start: "18:00", End: "19:00"},
	}

	matches, rowErrors := expandRows(req, previews)
	if len(rowErrors) != 0 {
		t.Fatalf("rowErrors = %v, want none", rowErrors)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}

	want := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	if !matches[0].StartsAt.Equal(want) {
		t.Fatalf("StartsAt = %v, want %v", matches[0].StartsAt, want)
	}
	if matches[0].VenueID != req.VenueID || matches[0].SlotPriceCents != req.SlotPrice {
		t.Fatalf("match details not carried over: %+v", matches[0])
	}
}

func TestExpandRowsReportsIndexedErrors(t *testing.T) {
	req := recurringDetails()
	previews := []recurrence.Preview{
		{Date: "2025-07-01", Start: "18:00", End: "19:00"},
		{Date: "2025-07-02", Start: "25:99", End: "19:00"}, // bad start
		{Date: "2025-07-03", Start: "18:00", End: "17:00"}, // end before start
		{Date: "2025-07-04", Start: "18:00", End: "19:00"},
	}

	matches, rowErrors := expandRows(req, previews)
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if len(rowErrors) != 2 {
		t.Fatalf("rowErrors = %v, want 2 entries", rowErrors)
	}
	if rowErrors[0].Index != 1 || rowErrors[1].Index != 2 {
		t.Fatalf("row error indexes = %d,%d, want 1,2", rowErrors[0].Index, rowErrors[1].Index)
	}
	for _, re := range rowErrors {
		if re.Message == "" {
			t.Fatalf("row error %d has an empty message", re.Index)
		}
	}
}

func TestExpandRowsEmptyErrorsIsNotNil(t *testing.T) {
	_, rowErrors := expandRows(recurringDetails(), nil)
	if rowErrors == nil {
		t.Fatalf("rowErrors must serialize as an empty array, not null")
	}
}
