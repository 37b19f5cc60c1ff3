package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/grocer/internal/auth"
)

// Action is one dashboard menu entry.
type Action func(ctx context.Context) error

// Middleware wraps an Action.
type Middleware func(Action) Action

// Chain wraps action so that the first middleware runs outermost.
func Chain(action Action, mws ...Middleware) Action {
	for i := len(mws) - 1; i >= 0; i-- {
		action = mws[i](action)
	}
	return action
}

// Logging returns a middleware that logs every action call.
// It logs the action name, user ID, duration, and any error.
func Logging(name string) Middleware {
	return func(next Action) Action {
		return func(ctx context.Context) error {
			start := time.Now()

			err := next(ctx)

			userID := GetUserID(ctx) // empty before login
			duration := time.Since(start).Milliseconds()
			switch {
			case err == nil:
				slog.Info("Action ok",
					"action", name,
					"user_id", userID,
					"duration_ms", duration,
				)
			case isSessionError(err):
				slog.Warn("Action rejected",
					"action", name,
					"error", err,
					"user_id", userID,
					"duration_ms", duration,
				)
			default:
				slog.Error("Action error",
					"action", name,
					"error", err,
					"user_id", userID,
					"duration_ms", duration,
				)
			}

			return err
		}
	}
}

func isSessionError(err error) bool {
	return errors.Is(err, auth.ErrMissingToken) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrNotAdmin)
}
