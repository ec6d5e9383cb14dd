package model

import "time"

// Service is a bookable offering belonging to exactly one store.  Duration
// is expressed in minutes and price in the store's currency.  This struct
// corresponds to a row in the `services` table.
//
// Fields:
//
//	ID          – primary key identifier.
//	StoreID     – owning store.
//	Name        – service name (e.g. "Haircut").
//	Description – free-text description.
//	Duration    – length of the appointment in minutes.
//	Price       – price charged for the service.
//	CreatedAt   – timestamp when the service was created.
//	UpdatedAt   – timestamp of last update.
type Service struct {
	ID          uint64    // services.id
	StoreID     uint64    // services.store_id
	Name        string    // services.name
	Description string    // services.description
	Duration    uint32    // services.duration (minutes)
	Price       float64   // services.price
	CreatedAt   time.Time // services.created_at
	UpdatedAt   time.Time // services.updated_at
}
