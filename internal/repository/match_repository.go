// This file defines the Match repository. Listing supports both the
// generic limit/offset window and the bucket-derived time/status
// filter: the Window produced by the bucket package is translated into
// a WHERE clause here, including the strict/inclusive bound choice per
// tab.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/turfbook/match-admin/internal/bucket"
	"github.com/turfbook/match-admin/internal/model"
)

// ErrMatchNotFound indicates that a match was not located in the DB.
var ErrMatchNotFound = errors.New("match not found")

// MatchRepo manages persistence for matches.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo constructs a MatchRepo with the given DB handle.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories (bulk creation writes
// matches in one transaction).
func (r *MatchRepo) DB() *sql.DB {
	return r.db
}

const matchCols = `id, venue_id, football_chief_id, starts_at, ends_at, match_type,
       player_capacity, slot_price_cents, offer_price_cents, status, stats_job_id, created_at, updated_at`

func scanMatch(row interface{ Scan(...any) error }, m *model.Match) error {
	return row.Scan(&m.ID, &m.VenueID, &m.FootballChiefID, &m.StartsAt, &m.EndsAt, &m.MatchType,
		&m.PlayerCapacity, &m.SlotPriceCents, &m.OfferPriceCents, &m.Status, &m.StatsJobID, &m.CreatedAt, &m.UpdatedAt)
}

// Create inserts a new match and assigns the generated ID back to the
// struct. Status defaults to ACTIVE via the DB.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) error {
	const q = `INSERT INTO matches
	           (venue_id, football_chief_id, starts_at, ends_at, match_type, player_capacity, slot_price_cents, offer_price_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.VenueID, m.FootballChiefID, m.StartsAt, m.EndsAt,
		m.MatchType, m.PlayerCapacity, m.SlotPriceCents, m.OfferPriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT ` + matchCols + ` FROM matches WHERE id = ?`
	return scanMatch(r.db.QueryRowContext(ctx, sel, m.ID), m)
}

// CreateTx is Create inside the caller's transaction; used by the
// recurring bulk flow so a mid-sequence failure rolls everything back.
func (r *MatchRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *model.Match) error {
	const q = `INSERT INTO matches
	           (venue_id, football_chief_id, starts_at, ends_at, match_type, player_capacity, slot_price_cents, offer_price_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, m.VenueID, m.FootballChiefID, m.StartsAt, m.EndsAt,
		m.MatchType, m.PlayerCapacity, m.SlotPriceCents, m.OfferPriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID retrieves a match by its ID. It returns ErrMatchNotFound if
// there is no matching row.
func (r *MatchRepo) GetByID(ctx context.Context, id uint64) (*model.Match, error) {
	const q = `SELECT ` + matchCols + ` FROM matches WHERE id = ?`
	var m model.Match
	if err := scanMatch(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByWindow returns a page of matches inside the bucket window plus
// the unpaged total for that window.
func (r *MatchRepo) ListByWindow(ctx context.Context, w bucket.Window, limit, offset int, sort, order string) ([]model.Match, int, error) {
	where, args := windowClause(w)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + matchCols + ` FROM matches` + where + ` ORDER BY ` + sort + ` ` + order + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Match
	for rows.Next() {
		var m model.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, 0, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// windowClause turns a bucket.Window into a WHERE fragment. The window
// carries either Status or StatusNot, never both, so the generated
// predicate keeps the buckets disjoint.
func windowClause(w bucket.Window) (string, []any) {
	clauses := []string{}
	args := []any{}
	if w.From != nil {
		op := ">="
		if w.FromExclusive {
			op = ">"
		}
		clauses = append(clauses, "starts_at "+op+" ?")
		args = append(args, w.From.UTC())
	}
	if w.To != nil {
		op := "<="
		if w.ToExclusive {
			op = "<"
		}
		clauses = append(clauses, "starts_at "+op+" ?")
		args = append(args, w.To.UTC())
	}
	if w.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, w.Status)
	} else if w.StatusNot != "" {
		clauses = append(clauses, "status <> ?")
		args = append(args, w.StatusNot)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

// Update rewrites the schedulable fields of a match. Lifecycle status
// is not touched here; cancellation and the stats workflow own it.
func (r *MatchRepo) Update(ctx context.Context, m *model.Match) error {
	const q = `UPDATE matches
               SET venue_id = ?, football_chief_id = ?, starts_at = ?, ends_at = ?,
                   match_type = ?, player_capacity = ?, slot_price_cents = ?, offer_price_cents = ?,
                   updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.VenueID, m.FootballChiefID, m.StartsAt, m.EndsAt,
		m.MatchType, m.PlayerCapacity, m.SlotPriceCents, m.OfferPriceCents, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// SetStatus applies a lifecycle transition, optionally recording the
// provider job id. Callers are the cancel flow and the stats workflow
// consumer.
func (r *MatchRepo) SetStatus(ctx context.Context, id uint64, status, statsJobID string) error {
	const q = `UPDATE matches SET status = ?, stats_job_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, statsJobID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// ListByStatus returns every match currently in the given status. The
// poll sweep uses it to find POLLING_STATS matches.
func (r *MatchRepo) ListByStatus(ctx context.Context, status string) ([]model.Match, error) {
	const q = `SELECT ` + matchCols + ` FROM matches WHERE status = ? ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Match
	for rows.Next() {
		var m model.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// Delete removes a match that never had bookings. Matches with
// participants are cancelled, not deleted.
func (r *MatchRepo) Delete(ctx context.Context, id uint64) error {
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
	var count int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants WHERE match_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		err = ErrConflict
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrMatchNotFound
		return err
	}
	return nil
}
