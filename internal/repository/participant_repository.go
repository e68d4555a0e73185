package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/turfbook/match-admin/internal/model"
)

// ErrParticipantNotFound indicates the booking row does not exist.
var ErrParticipantNotFound = errors.New("participant not found")

// ParticipantRepo manages persistence for match bookings.
type ParticipantRepo struct {
	db *sql.DB
}

// NewParticipantRepo constructs a ParticipantRepo with the given DB handle.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

const participantCols = `id, match_id, user_id, promo_code_id, paid_cents, refund_cents, status, created_at, updated_at`

func scanParticipant(row interface{ Scan(...any) error }, p *model.Participant) error {
	return row.Scan(&p.ID, &p.MatchID, &p.UserID, &p.PromoCodeID, &p.PaidCents, &p.RefundCents, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

// ListByMatch returns every booking on a match, oldest first.
func (r *ParticipantRepo) ListByMatch(ctx context.Context, matchID uint64) ([]model.Participant, error) {
	const q = `SELECT ` + participantCols + ` FROM participants WHERE match_id = ? ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := scanParticipant(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Add books a user onto a match. Capacity and duplicate checks are the
// caller's responsibility; the DB unique key on (match_id, user_id) is
// the backstop.
func (r *ParticipantRepo) Add(ctx context.Context, p *model.Participant) error {
	const q = `INSERT INTO participants (match_id, user_id, promo_code_id, paid_cents, status) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.MatchID, p.UserID, p.PromoCodeID, p.PaidCents, model.ParticipantStatusBooked)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	p.Status = model.ParticipantStatusBooked
	return nil
}

// Remove marks a booking REMOVED (no refund). Hard deletes never
// happen; accounting reads these rows.
func (r *ParticipantRepo) Remove(ctx context.Context, id uint64) error {
	const q = `UPDATE participants SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.ParticipantStatusRemoved, id, model.ParticipantStatusBooked)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// RefundAllForMatchTx marks every BOOKED participant on the match
// REFUNDED with the given per-booking refund amounts, inside the
// caller's transaction. The refunds map is keyed by participant ID.
func (r *ParticipantRepo) RefundAllForMatchTx(ctx context.Context, tx *sql.Tx, matchID uint64, refunds map[uint64]uint32) error {
	const q = `UPDATE participants SET status = ?, refund_cents = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND match_id = ? AND status = ?`
	for id, cents := range refunds {
		if _, err := tx.ExecContext(ctx, q, model.ParticipantStatusRefunded, cents, id, matchID, model.ParticipantStatusBooked); err != nil {
			return err
		}
	}
	return nil
}
