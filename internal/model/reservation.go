package model

import "time"

// Reservation status values.  A reservation starts out confirmed; only the
// cancel operation moves it to cancelled.  Completed is written by back
// office tooling after the appointment takes place.
const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// Payment status values stored in reservations.payment_status.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Reservation records a user booking a specific service at a specific
// store on a date and time.  Duration and TotalAmount are snapshots taken
// at booking time so later edits to the service do not rewrite history.
// This struct corresponds to a row in the `reservations` table.
//
// Fields:
//
//	ID            – primary key identifier.
//	UserID        – user who made the reservation.
//	StoreID       – store where the appointment takes place.
//	ServiceID     – booked service.
//	Date          – appointment date (YYYY-MM-DD).
//	Time          – appointment time (HH:MM).
//	Duration      – snapshot of the service duration in minutes.
//	TotalAmount   – snapshot of the price paid.
//	Status        – confirmed / cancelled / completed.
//	PaymentStatus – pending / paid / refunded.
//	PaymentMethod – free-text payment method label.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Reservation struct {
	ID            uint64    // reservations.id
	UserID        uint64    // reservations.user_id
	StoreID       uint64    // reservations.store_id
	ServiceID     uint64    // reservations.service_id
	Date          string    // reservations.reservation_date
	Time          string    // reservations.reservation_time
	Duration      uint32    // reservations.duration (minutes)
	TotalAmount   float64   // reservations.total_amount
	Status        string    // reservations.status
	PaymentStatus string    // reservations.payment_status
	PaymentMethod string    // reservations.payment_method
	CreatedAt     time.Time // reservations.created_at
	UpdatedAt     time.Time // reservations.updated_at
}
