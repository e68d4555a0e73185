package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/turfbook/match-admin/internal/model"
)

// ErrSeasonNotFound indicates the season row does not exist.
var ErrSeasonNotFound = errors.New("season not found")

// SeasonRepo manages persistence for leaderboard seasons.
type SeasonRepo struct {
	db *sql.DB
}

// NewSeasonRepo constructs a SeasonRepo with the given DB handle.
func NewSeasonRepo(db *sql.DB) *SeasonRepo {
	return &SeasonRepo{db: db}
}

const seasonCols = `id, name, starts_on, ends_on, is_active, created_at, updated_at`

func scanSeason(row interface{ Scan(...any) error }, s *model.Season) error {
	return row.Scan(&s.ID, &s.Name, &s.StartsOn, &s.EndsOn, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new (inactive) season.
func (r *SeasonRepo) Create(ctx context.Context, s *model.Season) error {
	const q = `INSERT INTO seasons (name, starts_on, ends_on) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.StartsOn, s.EndsOn)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a season by its ID.
func (r *SeasonRepo) GetByID(ctx context.Context, id uint64) (*model.Season, error) {
	const q = `SELECT ` + seasonCols + ` FROM seasons WHERE id = ?`
	var s model.Season
	if err := scanSeason(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns every season, newest first. Seasons are few; no paging.
func (r *SeasonRepo) List(ctx context.Context) ([]model.Season, error) {
	const q = `SELECT ` + seasonCols + ` FROM seasons ORDER BY starts_on DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Season
	for rows.Next() {
		var s model.Season
		if err := scanSeason(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Activate makes the given season the single active one. Both updates
// run in one transaction so there is never a moment with two active
// seasons.
func (r *SeasonRepo) Activate(ctx context.Context, id uint64) error {
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
	var one int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM seasons WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrSeasonNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE seasons SET is_active = 0 WHERE is_active = 1`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE seasons SET is_active = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// Leaderboard aggregates confirmed player stats over the season's date
// range, highest points first. Points weighting lives in the
// player_stats rows themselves (computed at mapping-confirm time).
func (r *SeasonRepo) Leaderboard(ctx context.Context, s *model.Season, limit int) ([]model.LeaderboardEntry, error) {
	const q = `SELECT u.id, u.first_name, u.last_name,
                      COUNT(DISTINCT ps.match_id),
                      COALESCE(SUM(ps.goals), 0), COALESCE(SUM(ps.assists), 0), COALESCE(SUM(ps.points), 0)
               FROM player_stats ps
               JOIN users u ON u.id = ps.user_id
               JOIN matches m ON m.id = ps.match_id
               WHERE DATE(m.starts_at) BETWEEN ? AND ?
               GROUP BY u.id, u.first_name, u.last_name
               ORDER BY SUM(ps.points) DESC, u.id ASC
               LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, s.StartsOn, s.EndsOn, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.FirstName, &e.LastName, &e.Matches, &e.Goals, &e.Assists, &e.Points); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// RecalculatePoints rewrites the points column for every stat line in
// the season from the current weighting. Run after an admin corrects
// mapped stats.
func (r *SeasonRepo) RecalculatePoints(ctx context.Context, s *model.Season) (int64, error) {
	// Weighting: goal 5, assist 3, save 2, plus 1 for playing.
	const q = `UPDATE player_stats ps
               JOIN matches m ON m.id = ps.match_id
               SET ps.points = ps.goals * 5 + ps.assists * 3 + ps.saves * 2 + 1
               WHERE DATE(m.starts_at) BETWEEN ? AND ?`
	res, err := r.db.ExecContext(ctx, q, s.StartsOn, s.EndsOn)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
