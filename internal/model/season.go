package model

import "time"

// Season represents a leaderboard season as stored in the `seasons`
// table. At most one season is active at a time; activation is an
// explicit admin action.
type Season struct {
	ID        uint64    // seasons.id
	Name      string    // seasons.name
	StartsOn  string    // seasons.starts_on (YYYY-MM-DD)
	EndsOn    string    // seasons.ends_on (YYYY-MM-DD)
	IsActive  bool      // seasons.is_active
	CreatedAt time.Time // seasons.created_at
	UpdatedAt time.Time // seasons.updated_at
}

// LeaderboardEntry is one row of the season leaderboard aggregate.
type LeaderboardEntry struct {
	UserID    uint64 `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Matches   uint32 `json:"matches"`
	Goals     uint32 `json:"goals"`
	Assists   uint32 `json:"assists"`
	Points    uint32 `json:"points"`
}
