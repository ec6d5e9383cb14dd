// This file defines repository methods for the services table. Ownership
// of a service follows its store: mutations issued by a store owner are
// expressed as single conditional statements (WHERE id AND store_id) so no
// separate check-then-mutate round trip exists to race against.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/9santoshki/saloon-reservation/internal/model"
)

// ServiceRepo encapsulates all database queries related to services.
type ServiceRepo struct {
	db *sql.DB
}

// NewServiceRepo constructs a ServiceRepo with the provided DB handle.
func NewServiceRepo(db *sql.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

const serviceColumns = `id, store_id, name, description, duration, price, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (*model.Service, error) {
	var s model.Service
	if err := row.Scan(&s.ID, &s.StoreID, &s.Name, &s.Description,
		&s.Duration, &s.Price, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListAll returns every service ordered by name.  Used for admin callers.
func (r *ServiceRepo) ListAll(ctx context.Context) ([]*model.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services ORDER BY name`
	return r.list(ctx, q)
}

// ListByStore returns the services of a single store ordered by name.
func (r *ServiceRepo) ListByStore(ctx context.Context, storeID uint64) ([]*model.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE store_id = $1 ORDER BY name`
	return r.list(ctx, q, storeID)
}

func (r *ServiceRepo) list(ctx context.Context, q string, args ...any) ([]*model.Service, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new service for the given store and populates the
// generated ID and timestamps on the model.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	const q = `INSERT INTO services (store_id, name, description, duration, price)
	           VALUES ($1, $2, $3, $4, $5)
	           RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		s.StoreID, s.Name, s.Description, s.Duration, s.Price,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// UpdateOwned updates a service only when it belongs to the given store.
// The ownership predicate is part of the UPDATE itself.  When nothing
// matches, a follow-up existence probe distinguishes a foreign service
// (ErrForbidden) from a missing one (ErrServiceNotFound).
func (r *ServiceRepo) UpdateOwned(ctx context.Context, s *model.Service) error {
	const q = `UPDATE services
	           SET name = $1, description = $2, duration = $3, price = $4,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = $5 AND store_id = $6
	           RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, q,
		s.Name, s.Description, s.Duration, s.Price, s.ID, s.StoreID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r.missOrForbidden(ctx, s.ID)
	}
	return err
}

// DeleteOwned deletes a service only when it belongs to the given store,
// with the same ErrForbidden / ErrServiceNotFound distinction as
// UpdateOwned.
func (r *ServiceRepo) DeleteOwned(ctx context.Context, id, storeID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM services WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.missOrForbidden(ctx, id)
	}
	return nil
}

// missOrForbidden resolves a zero-row conditional mutation: the service
// either exists under another store (forbidden) or not at all (not found).
func (r *ServiceRepo) missOrForbidden(ctx context.Context, id uint64) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM services WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrForbidden
	}
	return ErrServiceNotFound
}
