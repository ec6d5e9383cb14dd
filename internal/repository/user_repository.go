package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/9santoshki/saloon-reservation/internal/model"
	"github.com/9santoshki/saloon-reservation/internal/utils"
)

// UserRepo persists application accounts in the 'app_users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, username, email, password_hash, role, store_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (model.AppUser, error) {
	var u model.AppUser
	var storeID sql.NullInt64
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&storeID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.AppUser{}, err
	}
	if storeID.Valid {
		sid := uint64(storeID.Int64)
		u.StoreID = &sid
	}
	return u, nil
}

// Create hashes the password, inserts the account and returns its ID.
// A nil storeID stores NULL (admin accounts).  Duplicate usernames map to
// ErrUsernameExists via SQLSTATE 23505.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role string, storeID *uint64, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var sid sql.NullInt64
	if storeID != nil {
		sid = sql.NullInt64{Int64: int64(*storeID), Valid: true}
	}
	var id uint64
	err = r.DB.QueryRowContext(ctx,
		`INSERT INTO app_users (username, email, password_hash, role, store_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		username, email, hash, role, sid).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	return id, nil
}

// GetByUsername fetches an account by its unique username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.AppUser, error) {
	username = strings.TrimSpace(username)
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM app_users WHERE username = $1 LIMIT 1`, username))
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.AppUser, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM app_users WHERE id = $1 LIMIT 1`, id))
}

// ListAll returns every account newest first.  Password hashes stay in the
// repository layer; the admin handler maps rows to a sanitized response
// type before encoding.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.AppUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM app_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AppUser, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
