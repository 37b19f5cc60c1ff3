package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/grocer/internal/auth"
	"github.com/mmynk/grocer/internal/metrics"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
	"github.com/mmynk/grocer/internal/validate"
)

var ErrUserNotFound = errors.New("user not found")

// ProfileField selects what UpdateProfile changes.
type ProfileField int

const (
	FieldName ProfileField = iota + 1
	FieldEmail
	FieldPassword
)

func (f ProfileField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldPassword:
		return "password"
	default:
		return "unknown"
	}
}

// AccountService handles signup, login and profile changes.
type AccountService struct {
	authenticator auth.Authenticator
	users         *storage.UserRepository
	metrics       *metrics.Recorder
	logger        *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(authenticator auth.Authenticator, users *storage.UserRepository, recorder *metrics.Recorder, logger *slog.Logger) *AccountService {
	return &AccountService{
		authenticator: authenticator,
		users:         users,
		metrics:       recorder,
		logger:        logger,
	}
}

// Signup creates a new customer account.
func (s *AccountService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	s.logger.Info("Signup request", "email", email)

	user, err := s.authenticator.Register(ctx, name, email, password)
	if err != nil {
		s.logger.Warn("Signup failed", "email", email, "error", err)
		return nil, err
	}

	s.metrics.Signup()
	s.logger.Info("User signed up successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates a user. The caller routes on user.Admin.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.logger.Info("Login request", "email", email)

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.metrics.Login(false)
		s.logger.Warn("Login failed", "email", email, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	s.metrics.Login(true)
	s.logger.Info("User logged in successfully", "user_id", user.ID, "admin", user.Admin)
	return user, nil
}

// UpdateProfile changes one field of the account with the given ID and returns the updated account.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, field ProfileField, value string) (*models.User, error) {
	s.logger.Info("UpdateProfile request", "user_id", userID, "field", field.String())

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldName:
		user.Name = strings.TrimSpace(value)
	case FieldEmail:
		email := models.NormalizeEmail(value)
		if !validate.Email(email) {
			return nil, auth.ErrInvalidEmail
		}
		user.Email = email
	case FieldPassword:
		if err := s.authenticator.ValidateCredential(value); err != nil {
			return nil, err
		}
		user.Password = value
	default:
		return nil, fmt.Errorf("unknown profile field: %d", field)
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, auth.ErrEmailExists
		}
		s.logger.Error("UpdateProfile failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("Profile updated", "user_id", userID, "field", field.String())
	return user, nil
}

// EnsureAdmin makes sure an administrator account exists for email.
// An existing account is promoted; otherwise a new one is created with the given credentials.
func (s *AccountService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Admin {
			return existing, nil
		}
		existing.Admin = true
		if err := s.users.UpdateUser(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to promote admin: %w", err)
		}
		s.logger.Info("Promoted user to admin", "user_id", existing.ID, "email", email)
		return existing, nil
	}

	if !validate.Email(email) {
		return nil, auth.ErrInvalidEmail
	}
	if err := s.authenticator.ValidateCredential(password); err != nil {
		return nil, err
	}

	admin := models.NewUser(name, email, password)
	admin.Admin = true
	if err := s.users.CreateUser(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("Created admin account", "user_id", admin.ID, "email", email)
	return admin, nil
}
