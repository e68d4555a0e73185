package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/turfbook/match-admin/internal/model"
)

// ErrPromoNotFound indicates the promo code row does not exist.
var ErrPromoNotFound = errors.New("promo code not found")

// ErrPromoCodeExists indicates a create collides with an existing code.
var ErrPromoCodeExists = errors.New("promo code already exists")

// PromoRepo manages persistence for promo codes.
type PromoRepo struct {
	db *sql.DB
}

// NewPromoRepo constructs a PromoRepo with the given DB handle.
func NewPromoRepo(db *sql.DB) *PromoRepo {
	return &PromoRepo{db: db}
}

const promoCols = `id, code, discount_pct, max_discount_cents, valid_from, valid_until, max_uses, is_active, created_at, updated_at`

func scanPromo(row interface{ Scan(...any) error }, p *model.PromoCode) error {
	return row.Scan(&p.ID, &p.Code, &p.DiscountPct, &p.MaxDiscountCents, &p.ValidFrom, &p.ValidUntil, &p.MaxUses, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a new promo code. Duplicate codes map to
// ErrPromoCodeExists.
func (r *PromoRepo) Create(ctx context.Context, p *model.PromoCode) error {
	const dup = `SELECT 1 FROM promo_codes WHERE code = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, dup, p.Code).Scan(&one)
	if err == nil {
		return ErrPromoCodeExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	const q = `INSERT INTO promo_codes (code, discount_pct, max_discount_cents, valid_from, valid_until, max_uses, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Code, p.DiscountPct, p.MaxDiscountCents, p.ValidFrom, p.ValidUntil, p.MaxUses, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID retrieves a promo code by its ID.
func (r *PromoRepo) GetByID(ctx context.Context, id uint64) (*model.PromoCode, error) {
	const q = `SELECT ` + promoCols + ` FROM promo_codes WHERE id = ?`
	var p model.PromoCode
	if err := scanPromo(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update rewrites the mutable fields of a promo code. The code string
// itself is immutable once issued.
func (r *PromoRepo) Update(ctx context.Context, p *model.PromoCode) error {
	const q = `UPDATE promo_codes
               SET discount_pct = ?, max_discount_cents = ?, valid_from = ?, valid_until = ?, max_uses = ?, is_active = ?,
                   updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.DiscountPct, p.MaxDiscountCents, p.ValidFrom, p.ValidUntil, p.MaxUses, p.IsActive, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPromoNotFound
	}
	return nil
}

// Delete removes an unused promo code; used codes are deactivated
// instead so their bookings keep a valid reference.
func (r *PromoRepo) Delete(ctx context.Context, id uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants WHERE promo_code_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM promo_codes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPromoNotFound
	}
	return nil
}

// List returns a page of promo codes plus the unpaged total.
func (r *PromoRepo) List(ctx context.Context, limit, offset int, sort, order string) ([]model.PromoCode, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM promo_codes`).Scan(&total); err != nil {
		return nil, 0, err
	}
	q := `SELECT ` + promoCols + ` FROM promo_codes ORDER BY ` + sort + ` ` + order + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var result []model.PromoCode
	for rows.Next() {
		var p model.PromoCode
		if err := scanPromo(rows, &p); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// Usage aggregates how often the code was applied and the discount it
// granted. The discount per booking is slot price minus paid amount,
// summed over bookings that used the code.
func (r *PromoRepo) Usage(ctx context.Context, id uint64) (*model.PromoUsage, error) {
	const q = `SELECT COUNT(p.id),
                      COALESCE(SUM(GREATEST(m.slot_price_cents - p.paid_cents, 0)), 0)
               FROM participants p
               JOIN matches m ON m.id = p.match_id
               WHERE p.promo_code_id = ?`
	var u model.PromoUsage
	u.PromoCodeID = id
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.Uses, &u.DiscountTotalCents); err != nil {
		return nil, err
	}
	return &u, nil
}
