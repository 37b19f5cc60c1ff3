package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account, either a customer or an administrator.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	// Documents written by hand may omit it; the repository backfills one on load.
	ID string `json:"id,omitempty"`

	// Name is the display name shown on dashboards and receipts.
	Name string `json:"name"`

	// Email is the login key. Stored lower-cased and unique across users.
	Email string `json:"email"`

	// Password is stored as entered. Credential hashing is out of scope for this tool.
	Password string `json:"password"`

	// Admin routes the user to the admin dashboard after login.
	Admin bool `json:"admin"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at,omitempty"`
}

// NewUser creates a non-admin user with a fresh ID.
func NewUser(name, email, password string) *User {
	return &User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password,
		Admin:     false,
		CreatedAt: time.Now().Unix(),
	}
}

// NormalizeEmail trims and lower-cases an address so comparisons are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
