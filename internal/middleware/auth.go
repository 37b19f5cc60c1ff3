package middleware

import (
	"context"
	"log/slog"

	"github.com/mmynk/grocer/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// AdminKey is the context key for the session's admin claim.
	AdminKey contextKey = "admin"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// IsAdmin reports whether the session in ctx carries the admin claim.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(AdminKey).(bool)
	return admin
}

// RequireSession returns a middleware that validates the current session token
// and adds the user ID, email and admin claim to the action's context.
// token is read on every call so a logout takes effect immediately.
func RequireSession(sessions *auth.SessionManager, token func() string) Middleware {
	return func(next Action) Action {
		return func(ctx context.Context) error {
			claims, err := sessions.Validate(token())
			if err != nil {
				slog.Warn("Session rejected", "error", err)
				return err
			}

			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			ctx = context.WithValue(ctx, AdminKey, claims.Admin)

			return next(ctx)
		}
	}
}

// RequireAdmin rejects actions whose session lacks the admin claim.
// It must run inside RequireSession.
func RequireAdmin() Middleware {
	return func(next Action) Action {
		return func(ctx context.Context) error {
			if !IsAdmin(ctx) {
				return auth.ErrNotAdmin
			}
			return next(ctx)
		}
	}
}
