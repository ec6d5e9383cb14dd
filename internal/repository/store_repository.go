// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for the stores table. A Store is a
// salon/spa location managed by admins and browsed publicly; opening hours
// live in a JSONB column and are (de)serialized here so handlers only ever
// see the model.OpeningHours map.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/9santoshki/saloon-reservation/internal/model"
)

// StoreRepo encapsulates all database queries related to stores.  It
// depends on a sql.DB connection which is constructed at startup and
// injected here (and into tests).
type StoreRepo struct {
	db *sql.DB
}

// NewStoreRepo constructs a StoreRepo with the provided DB handle.
func NewStoreRepo(db *sql.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

const storeColumns = `id, name, address, latitude, longitude, phone, email, description, opening_hours, created_at, updated_at`

// scanStore reads one stores row from a row scanner, decoding the JSONB
// opening_hours payload.
func scanStore(row interface{ Scan(...any) error }) (*model.Store, error) {
	var s model.Store
	var hours []byte
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Latitude, &s.Longitude,
		&s.Phone, &s.Email, &s.Description, &hours, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &s.OpeningHours); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// ListAll returns every store ordered by name.  Used by the public browse
// endpoint; no pagination.
func (r *StoreRepo) ListAll(ctx context.Context) ([]*model.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
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

// GetByID fetches a store by its ID.  It returns ErrStoreNotFound when no
// row exists.
func (r *StoreRepo) GetByID(ctx context.Context, id uint64) (*model.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	s, err := scanStore(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return s, nil
}

// Create inserts a new store and populates the generated ID and timestamp
// fields on the provided model via RETURNING.
func (r *StoreRepo) Create(ctx context.Context, s *model.Store) error {
	hours, err := json.Marshal(s.OpeningHours)
	if err != nil {
		return err
	}
	const q = `INSERT INTO stores (name, address, latitude, longitude, phone, email, description, opening_hours)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	           RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		s.Name, s.Address, s.Latitude, s.Longitude, s.Phone, s.Email, s.Description, hours,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update replaces every mutable column of the store identified by s.ID.
// Last write wins; there is no optimistic locking on stores.  It returns
// ErrStoreNotFound when the row does not exist.
func (r *StoreRepo) Update(ctx context.Context, s *model.Store) error {
	hours, err := json.Marshal(s.OpeningHours)
	if err != nil {
		return err
	}
	const q = `UPDATE stores
	           SET name = $1, address = $2, latitude = $3, longitude = $4,
	               phone = $5, email = $6, description = $7, opening_hours = $8,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = $9
	           RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, q,
		s.Name, s.Address, s.Latitude, s.Longitude, s.Phone, s.Email, s.Description, hours, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStoreNotFound
	}
	return err
}

// Delete removes a store by id.  Dependent services and reservations are
// left in place (no cascade).  It returns ErrStoreNotFound when no row was
// deleted.
func (r *StoreRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoreNotFound
	}
	return nil
}
