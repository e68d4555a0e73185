package matching

import (
	"testing"

	"github.com/turfbook/match-admin/internal/model"
)

var users = []model.User{
	{ID: 1, FirstName: "Arjun", LastName: "Mehta"},
	{ID: 2, FirstName: "Rohan", LastName: "Sharma"},
	{ID: 3, FirstName: "Arjun", LastName: "Singh"},
	{ID: 4, FirstName: "Kiran", LastName: "Patel"},
}

func TestSuggestRanksBestFirst(t *testing.T) {
	got := Suggest("Arjun Mehta", users, 3)
	if len(got) == 0 {
		t.Fatalf("no suggestions for an exact name")
	}
	if got[0].UserID != 1 {
		t.Fatalf("best = user %d, want 1 (%+v)", got[0].UserID, got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Distance > got[i].Distance {
			t.Fatalf("suggestions not sorted by distance: %+v", got)
		}
	}
}

func TestSuggestCaseInsensitive(t *testing.T) {
	got := Suggest("rohan sharma", users, 1)
	if len(got) != 1 || got[0].UserID != 2 {
		t.Fatalf("got %+v, want user 2", got)
	}
}

func TestSuggestRespectsLimit(t *testing.T) {
	got := Suggest("Arjun", users, 1)
	if len(got) > 1 {
		t.Fatalf("limit ignored: %d results", len(got))
	}
}

func TestSuggestNoMatch(t *testing.T) {
	if got := Suggest("Zzyzx Qwrt", users, 3); len(got) != 0 {
		t.Fatalf("unrelated name matched: %+v", got)
	}
}

func TestSuggestEmptyInputs(t *testing.T) {
	if got := Suggest("", users, 3); got != nil {
		t.Fatalf("empty name returned %+v", got)
	}
	if got := Suggest("Arjun", nil, 3); got != nil {
		t.Fatalf("no users returned %+v", got)
	}
	if got := Suggest("Arjun", users, 0); got != nil {
		t.Fatalf("zero limit returned %+v", got)
	}
}
