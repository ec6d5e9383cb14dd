package model

import "time"

// Role values stored in app_users.role.  Statuses are plain text in the
// database, not an enforced enum.
const (
	RoleAdmin      = "admin"
	RoleStoreOwner = "store_owner"
)

// AppUser represents an application account as stored in the `app_users`
// table.  Admins manage the store catalog; store_owner accounts carry a
// StoreID that scopes every store-level operation they perform.  The json
// tags are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types.
//
// Fields:
//
//	ID           – primary key identifier.
//	Username     – unique login name.
//	Email        – contact email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – "admin" or "store_owner".
//	StoreID      – owned store for store_owner accounts (null for admins).
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type AppUser struct {
	ID           uint64    // app_users.id
	Username     string    // app_users.username
	Email        string    // app_users.email
	PasswordHash string    // app_users.password_hash
	Role         string    // app_users.role
	StoreID      *uint64   // app_users.store_id (nullable)
	CreatedAt    time.Time // app_users.created_at
	UpdatedAt    time.Time // app_users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry and
// revocation.  The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (null if still active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
