package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/turfbook/match-admin/internal/model"
)

// ErrUserNotFound indicates that a user was not located in the DB.
var ErrUserNotFound = errors.New("user not found")

// ErrMobileExists indicates a create/update collides with an existing
// mobile number.
var ErrMobileExists = errors.New("mobile already exists")

// UserRepo manages persistence for user accounts.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userCols = `id, mobile, first_name, last_name, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
	return row.Scan(&u.ID, &u.Mobile, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

// GetByMobile returns the user owning the given mobile number.
func (r *UserRepo) GetByMobile(ctx context.Context, mobile string) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE mobile = ?`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, mobile), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id = ?`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, id), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and assigns the generated ID back to the
// struct. A duplicate mobile maps to ErrMobileExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const dup = `SELECT 1 FROM users WHERE mobile = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, dup, u.Mobile).Scan(&one)
	if err == nil {
		return ErrMobileExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	const q = `INSERT INTO users (mobile, first_name, last_name, role, is_active) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.Mobile, u.FirstName, u.LastName, u.Role, u.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// Update rewrites the mutable fields of a user. Returns ErrUserNotFound
// when no row matches, ErrNoChange when the values are identical.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	const q = `UPDATE users
               SET first_name = ?, last_name = ?, role = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?
                 AND (first_name <> ? OR last_name <> ? OR role <> ? OR is_active <> ?)`
	res, err := r.db.ExecContext(ctx, q,
		u.FirstName, u.LastName, u.Role, u.IsActive,
		u.ID,
		u.FirstName, u.LastName, u.Role, u.IsActive,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	const qExists = `SELECT 1 FROM users WHERE id = ? LIMIT 1`
	var one int
	if err := r.db.QueryRowContext(ctx, qExists, u.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return ErrNoChange
}

// Deactivate flips is_active off instead of deleting; bookings keep
// their participant rows either way.
func (r *UserRepo) Deactivate(ctx context.Context, id uint64) error {
	const q = `UPDATE users SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns a page of users plus the unpaged total. An optional
// role filter narrows the result.
func (r *UserRepo) List(ctx context.Context, role string, limit, offset int, sort, order string) ([]model.User, int, error) {
	where := ""
	args := []any{}
	if role != "" {
		where = ` WHERE role = ?`
		args = append(args, role)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// sort/order come from the listquery whitelist, never raw input.
	q := `SELECT ` + userCols + ` FROM users` + where + ` ORDER BY ` + sort + ` ` + order + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// ListActivePlayers returns active accounts for the stats mapping
// suggestions. Capped because fuzzy ranking walks the whole slice.
func (r *UserRepo) ListActivePlayers(ctx context.Context, limit int) ([]model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE is_active = 1 ORDER BY id ASC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
