package model

import "time"

// Staff roles.  Staff accounts are the only authenticated principals;
// diners book anonymously from the device.
const (
	RoleStaff   = "STAFF"
	RoleManager = "MANAGER"
)

// Staff represents a restaurant staff account as stored in the `staff`
// table.  Staff may inspect the full reservation history, including
// canceled bookings.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique login email, lower-cased.
//  PasswordHash – bcrypt hash of the password.
//  Role         – STAFF or MANAGER.
//  IsActive     – inactive accounts cannot log in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Staff struct {
	ID           uint64    // staff.id
	Email        string    // staff.email
	PasswordHash string    // staff.password_hash
	Role         string    // staff.role
	IsActive     bool      // staff.is_active
	CreatedAt    time.Time // staff.created_at
	UpdatedAt    time.Time // staff.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.
// Only the SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	StaffID   uint64     // refresh_tokens.staff_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
