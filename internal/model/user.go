package model

import "time"

// Role values stored in users.role.  Admins manage books, categories,
// users and returns; regular users browse and borrow.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a library member or administrator as stored in the
// `users` table.  The password is kept only as a bcrypt hash.  The
// membership number is assigned at registration and shown on borrow
// records.  Handlers define separate response types so the hash never
// leaves the repository layer.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – display name of the member.
//  Email            – unique, normalized to lower case.
//  PasswordHash     – bcrypt hashed password.
//  Role             – user or admin.
//  MembershipNumber – library card number (e.g. MEM20260001).
//  Phone            – optional contact number.
//  IsActive         – whether the account is active (soft delete).
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type User struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	MembershipNumber string    `json:"membership_number"`
	Phone            string    `json:"phone,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only
// the SHA-256 hash of the token value is stored; the raw value goes
// back to the client once and is never persisted.
type RefreshToken struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
