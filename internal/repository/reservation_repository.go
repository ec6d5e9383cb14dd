package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/9santoshki/saloon-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for the reservations ledger.
// Every read is scoped to the owning user; cancellation is a single
// conditional UPDATE so a row can never be cancelled on another user's
// behalf.  All timestamp columns are assumed to be stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, user_id, store_id, service_id,
	to_char(reservation_date, 'YYYY-MM-DD'), to_char(reservation_time, 'HH24:MI'),
	duration, total_amount, status, payment_status, payment_method, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	var method sql.NullString
	if err := row.Scan(&res.ID, &res.UserID, &res.StoreID, &res.ServiceID,
		&res.Date, &res.Time, &res.Duration, &res.TotalAmount,
		&res.Status, &res.PaymentStatus, &method,
		&res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	res.PaymentMethod = method.String
	return &res, nil
}

// Create inserts a new reservation row.  Status starts as 'confirmed' and
// payment_status is persisted as 'paid' no matter what the client claims,
// mirroring the simulated checkout flow.  Duration and total amount are
// written as snapshots taken from the booked service.  The generated ID
// and timestamps are populated on the model via RETURNING.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (user_id, store_id, service_id, reservation_date, reservation_time,
	            duration, total_amount, payment_method, status, payment_status)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'confirmed', 'paid')
	           RETURNING id, status, payment_status, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		res.UserID, res.StoreID, res.ServiceID, res.Date, res.Time,
		res.Duration, res.TotalAmount, res.PaymentMethod,
	).Scan(&res.ID, &res.Status, &res.PaymentStatus, &res.CreatedAt, &res.UpdatedAt)
}

// ListByUser returns all reservations belonging to a user, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDForUser returns a single reservation scoped to the given user.
// It returns ErrReservationNotFound when no such row exists for the user.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, reservationID, userID uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations WHERE id = $1 AND user_id = $2`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, reservationID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// CancelForUser sets status to 'cancelled' on the user's own reservation
// and returns the updated row.  The update is idempotent: cancelling an
// already-cancelled reservation matches the row again and simply rewrites
// the same status.  ErrReservationNotFound is returned when the id does
// not exist under this user.
func (r *ReservationRepo) CancelForUser(ctx context.Context, reservationID, userID uint64) (*model.Reservation, error) {
	const q = `UPDATE reservations
	           SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
	           WHERE id = $1 AND user_id = $2
	           RETURNING ` + reservationColumns
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, reservationID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}
