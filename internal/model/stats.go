package model

import "time"

// ProviderPlayerStat is one player's line as returned by the
// PlayerNation video-analysis provider, stored unmapped in the
// `provider_player_stats` table until an operator confirms which
// platform user it belongs to.
type ProviderPlayerStat struct {
	ID         uint64    // provider_player_stats.id
	MatchID    uint64    // provider_player_stats.match_id
	PlayerName string    // provider_player_stats.player_name (provider-side label)
	Goals      uint32    // provider_player_stats.goals
	Assists    uint32    // provider_player_stats.assists
	Saves      uint32    // provider_player_stats.saves
	MappedUser uint64    // provider_player_stats.mapped_user_id (0 until confirmed)
	CreatedAt  time.Time // provider_player_stats.created_at
}

// PlayerStat is a confirmed per-user stat line in the `player_stats`
// table; the leaderboard aggregates over these rows.
type PlayerStat struct {
	ID      uint64 // player_stats.id
	MatchID uint64 // player_stats.match_id
	UserID  uint64 // player_stats.user_id
	Goals   uint32 // player_stats.goals
	Assists uint32 // player_stats.assists
	Saves   uint32 // player_stats.saves
	Points  uint32 // player_stats.points
}
