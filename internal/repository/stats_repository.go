package repository

import (
	"context"
	"database/sql"

	"github.com/turfbook/match-admin/internal/model"
)

// StatsRepo manages the two stats tables: the raw provider lines held
// until mapping, and the confirmed per-user lines the leaderboard
// reads.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo constructs a StatsRepo with the given DB handle.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// ReplaceProviderStats swaps the unmapped provider lines for a match.
// The poll sweep calls this when a provider job completes; re-polling
// the same job must not duplicate rows.
func (r *StatsRepo) ReplaceProviderStats(ctx context.Context, matchID uint64, stats []model.ProviderPlayerStat) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM provider_player_stats WHERE match_id = ?`, matchID); err != nil {
		return err
	}
	const q = `INSERT INTO provider_player_stats (match_id, player_name, goals, assists, saves) VALUES (?, ?, ?, ?, ?)`
	for _, s := range stats {
		if _, err = tx.ExecContext(ctx, q, matchID, s.PlayerName, s.Goals, s.Assists, s.Saves); err != nil {
			return err
		}
	}
	return nil
}

// ProviderStats returns the unmapped provider lines for a match.
func (r *StatsRepo) ProviderStats(ctx context.Context, matchID uint64) ([]model.ProviderPlayerStat, error) {
	const q = `SELECT id, match_id, player_name, goals, assists, saves, mapped_user_id, created_at
               FROM provider_player_stats WHERE match_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.ProviderPlayerStat
	for rows.Next() {
		var s model.ProviderPlayerStat
		if err := rows.Scan(&s.ID, &s.MatchID, &s.PlayerName, &s.Goals, &s.Assists, &s.Saves, &s.MappedUser, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// InsertPlayerStats stores confirmed stat lines directly, used by the
// manual CSV upload path which bypasses mapping.
func (r *StatsRepo) InsertPlayerStats(ctx context.Context, stats []model.PlayerStat) error {
	const q = `INSERT INTO player_stats (match_id, user_id, goals, assists, saves, points) VALUES (?, ?, ?, ?, ?, ?)`
	for _, s := range stats {
		if _, err := r.db.ExecContext(ctx, q, s.MatchID, s.UserID, s.Goals, s.Assists, s.Saves, s.Points); err != nil {
			return err
		}
	}
	return nil
}

// ConfirmMapping records the operator's player-identity decisions and
// materializes the confirmed player_stats rows in one transaction.
// The mapping is keyed by provider stat ID; unmapped lines are left
// behind for a later pass. Points use the standard weighting (goal 5,
// assist 3, save 2, plus 1 for playing).
func (r *StatsRepo) ConfirmMapping(ctx context.Context, matchID uint64, mapping map[uint64]uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	const upd = `UPDATE provider_player_stats SET mapped_user_id = ? WHERE id = ? AND match_id = ?`
	const ins = `INSERT INTO player_stats (match_id, user_id, goals, assists, saves, points)
                 SELECT match_id, ?, goals, assists, saves, goals * 5 + assists * 3 + saves * 2 + 1
                 FROM provider_player_stats WHERE id = ? AND match_id = ?`
	for statID, userID := range mapping {
		if _, err = tx.ExecContext(ctx, upd, userID, statID, matchID); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, ins, userID, statID, matchID); err != nil {
			return err
		}
	}
	return nil
}
