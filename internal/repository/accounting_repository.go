// This file defines the accounting read models. Everything here is a
// SQL aggregate over bookings inside an inclusive [from, to] date
// range; the handlers layer the no-eviction cache on top.
package repository

import (
	"context"
	"database/sql"
)

// AccountingSummary is the platform-wide money view for a date range.
type AccountingSummary struct {
	From             string `json:"from"`
	To               string `json:"to"`
	Matches          uint32 `json:"matches"`
	Bookings         uint32 `json:"bookings"`
	GrossCents       uint64 `json:"gross"`
	RefundedCents    uint64 `json:"refunded"`
	NetCents         uint64 `json:"net"`
	CancelledMatches uint32 `json:"cancelledMatches"`
}

// CityRevenue is one row of the by-city breakdown.
type CityRevenue struct {
	City       string `json:"city"`
	Matches    uint32 `json:"matches"`
	Bookings   uint32 `json:"bookings"`
	GrossCents uint64 `json:"gross"`
}

// ChiefRevenue is one row of the by-football-chief breakdown.
type ChiefRevenue struct {
	FootballChiefID uint64 `json:"footballChiefId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Matches         uint32 `json:"matches"`
	Bookings        uint32 `json:"bookings"`
	GrossCents      uint64 `json:"gross"`
}

// CancelledMatchRow is one row of the cancelled-matches report.
type CancelledMatchRow struct {
	MatchID       uint64 `json:"matchId"`
	VenueName     string `json:"venue"`
	StartsAt      string `json:"startTime"`
	Bookings      uint32 `json:"bookings"`
	RefundedCents uint64 `json:"refunded"`
}

// AccountingRepo runs the aggregate queries behind the accounting
// reports.
type AccountingRepo struct {
	db *sql.DB
}

// NewAccountingRepo constructs an AccountingRepo with the given DB handle.
func NewAccountingRepo(db *sql.DB) *AccountingRepo {
	return &AccountingRepo{db: db}
}

// Summary computes the platform-wide totals between two calendar days
// (inclusive, YYYY-MM-DD).
func (r *AccountingRepo) Summary(ctx context.Context, from, to string) (*AccountingSummary, error) {
	s := AccountingSummary{From: from, To: to}
	const qm = `SELECT COUNT(*),
                       COALESCE(SUM(status = 'CANCELLED'), 0)
                FROM matches WHERE DATE(starts_at) BETWEEN ? AND ?`
	if err := r.db.QueryRowContext(ctx, qm, from, to).Scan(&s.Matches, &s.CancelledMatches); err != nil {
		return nil, err
	}
	const qb = `SELECT COUNT(p.id),
                       COALESCE(SUM(p.paid_cents), 0),
                       COALESCE(SUM(p.refund_cents), 0)
                FROM participants p
                JOIN matches m ON m.id = p.match_id
                WHERE DATE(m.starts_at) BETWEEN ? AND ?`
	if err := r.db.QueryRowContext(ctx, qb, from, to).Scan(&s.Bookings, &s.GrossCents, &s.RefundedCents); err != nil {
		return nil, err
	}
	s.NetCents = s.GrossCents - s.RefundedCents
	return &s, nil
}

// ByCity breaks revenue down per venue city, highest gross first.
func (r *AccountingRepo) ByCity(ctx context.Context, from, to string) ([]CityRevenue, error) {
	const q = `SELECT v.city,
                      COUNT(DISTINCT m.id),
                      COUNT(p.id),
                      COALESCE(SUM(p.paid_cents), 0)
               FROM matches m
               JOIN venues v ON v.id = m.venue_id
               LEFT JOIN participants p ON p.match_id = m.id
               WHERE DATE(m.starts_at) BETWEEN ? AND ?
               GROUP BY v.city
               ORDER BY SUM(p.paid_cents) DESC`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []CityRevenue
	for rows.Next() {
		var c CityRevenue
		if err := rows.Scan(&c.City, &c.Matches, &c.Bookings, &c.GrossCents); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// ByFootballChief breaks revenue down per responsible staff member.
func (r *AccountingRepo) ByFootballChief(ctx context.Context, from, to string) ([]ChiefRevenue, error) {
	const q = `SELECT u.id, u.first_name, u.last_name,
                      COUNT(DISTINCT m.id),
                      COUNT(p.id),
                      COALESCE(SUM(p.paid_cents), 0)
               FROM matches m
               JOIN users u ON u.id = m.football_chief_id
               LEFT JOIN participants p ON p.match_id = m.id
               WHERE DATE(m.starts_at) BETWEEN ? AND ?
               GROUP BY u.id, u.first_name, u.last_name
               ORDER BY SUM(p.paid_cents) DESC`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ChiefRevenue
	for rows.Next() {
		var c ChiefRevenue
		if err := rows.Scan(&c.FootballChiefID, &c.FirstName, &c.LastName, &c.Matches, &c.Bookings, &c.GrossCents); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// CancelledMatches lists cancelled matches in the range with their
// refund totals, newest first.
func (r *AccountingRepo) CancelledMatches(ctx context.Context, from, to string) ([]CancelledMatchRow, error) {
	const q = `SELECT m.id, v.name, m.starts_at,
                      COUNT(p.id),
                      COALESCE(SUM(p.refund_cents), 0)
               FROM matches m
               JOIN venues v ON v.id = m.venue_id
               LEFT JOIN participants p ON p.match_id = m.id
               WHERE m.status = 'CANCELLED' AND DATE(m.starts_at) BETWEEN ? AND ?
               GROUP BY m.id, v.name, m.starts_at
               ORDER BY m.starts_at DESC`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []CancelledMatchRow
	for rows.Next() {
		var c CancelledMatchRow
		if err := rows.Scan(&c.MatchID, &c.VenueName, &c.StartsAt, &c.Bookings, &c.RefundedCents); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
