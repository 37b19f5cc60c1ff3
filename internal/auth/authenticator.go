package auth

import (
	"context"

	"github.com/mmynk/grocer/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The dashboard only talks to this interface, so the credential check can change
// without touching the account flows.
type Authenticator interface {
	// Register creates a new non-admin account.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, name, email, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Every failure is reported as ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
