// Package matching ranks platform users against the free-text player
// names the stats provider reports, so the mapping screen can offer
// likely candidates instead of a raw user picker.
package matching

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/turfbook/match-admin/internal/model"
)

// Suggestion pairs a candidate user with the match distance (lower is
// better).
type Suggestion struct {
	UserID    uint64 `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Distance  int    `json:"distance"`
}

// Suggest returns up to limit users whose full name fuzzily matches
// the provider-side player name, best first. An empty result means no
// user name resembles the label at all; the operator picks manually.
func Suggest(playerName string, users []model.User, limit int) []Suggestion {
	source := strings.TrimSpace(playerName)
	if source == "" || len(users) == 0 || limit <= 0 {
		return nil
	}

	targets := make([]string, len(users))
	for i, u := range users {
		targets[i] = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}

	ranks := fuzzy.RankFindNormalizedFold(source, targets)
	sort.Sort(ranks)

	out := make([]Suggestion, 0, limit)
	for _, r := range ranks {
		u := users[r.OriginalIndex]
		out = append(out, Suggestion{
			UserID:    u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Distance:  r.Distance,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}
