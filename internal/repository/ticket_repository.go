package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/turfbook/match-admin/internal/model"
)

// ErrTicketNotFound indicates the ticket row does not exist.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepo manages persistence for support tickets. The admin
// surface only updates workflow fields; ticket creation happens in the
// player-facing product.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

const ticketCols = `id, user_id, match_id, subject, body, status, assignee_id, resolution, created_at, updated_at`

func scanTicket(row interface{ Scan(...any) error }, t *model.Ticket) error {
	return row.Scan(&t.ID, &t.UserID, &t.MatchID, &t.Subject, &t.Body, &t.Status, &t.AssigneeID, &t.Resolution, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID retrieves a ticket by its ID.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	const q = `SELECT ` + ticketCols + ` FROM tickets WHERE id = ?`
	var t model.Ticket
	if err := scanTicket(r.db.QueryRowContext(ctx, q, id), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns a page of tickets plus the unpaged total, optionally
// filtered by status.
func (r *TicketRepo) List(ctx context.Context, status string, limit, offset int, sort, order string) ([]model.Ticket, int, error) {
	where := ""
	args := []any{}
	if status != "" {
		where = ` WHERE status = ?`
		args = append(args, status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + ticketCols + ` FROM tickets` + where + ` ORDER BY ` + sort + ` ` + order + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, 0, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// UpdateWorkflow rewrites the workflow fields (status, assignee,
// resolution). Subject and body belong to the reporter and are never
// touched here.
func (r *TicketRepo) UpdateWorkflow(ctx context.Context, id uint64, status string, assigneeID uint64, resolution string) error {
	const q = `UPDATE tickets SET status = ?, assignee_id = ?, resolution = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, assigneeID, resolution, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}
