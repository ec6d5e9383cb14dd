// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation row is written.
// It carries enough information for downstream consumers to log, notify, or
// feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	UserID        uint64  `json:"user_id"`
	StoreID       uint64  `json:"store_id"`
	StoreName     string  `json:"store_name"`
	ServiceID     uint64  `json:"service_id"`
	ServiceName   string  `json:"service_name"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Duration      uint32  `json:"duration"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
