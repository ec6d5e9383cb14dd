package model

import "time"

// DayHours holds the opening and closing time for a single weekday.
// Times are stored as "HH:MM" strings exactly as entered by the admin.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours maps a weekday name (e.g. "Monday") to its hours.  The map
// is persisted as a JSONB column so missing days simply mean closed.
type OpeningHours map[string]DayHours

// Store represents a salon or spa location.  Stores are created and
// managed by admins; each store_owner account is bound to exactly one
// store.  This struct corresponds to a row in the `stores` table.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – display name of the store.
//	Address      – street address shown to customers.
//	Latitude     – latitude of the store location.
//	Longitude    – longitude of the store location.
//	Phone        – contact phone number.
//	Email        – contact email address.
//	Description  – free-text description.
//	OpeningHours – per-weekday open/close map (JSONB).
//	CreatedAt    – timestamp when the store was created.
//	UpdatedAt    – timestamp of last update.
type Store struct {
	ID           uint64       // stores.id
	Name         string       // stores.name
	Address      string       // stores.address
	Latitude     float64      // stores.latitude
	Longitude    float64      // stores.longitude
	Phone        string       // stores.phone
	Email        string       // stores.email
	Description  string       // stores.description
	OpeningHours OpeningHours // stores.opening_hours (jsonb)
	CreatedAt    time.Time    // stores.created_at
	UpdatedAt    time.Time    // stores.updated_at
}
