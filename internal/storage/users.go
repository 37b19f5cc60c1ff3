package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/grocer/internal/models"
)

// UserRepository provides keyed access to the users document.
type UserRepository struct {
	doc Document[models.User]
}

// NewUserRepository wraps the users document.
func NewUserRepository(doc Document[models.User]) *UserRepository {
	return &UserRepository{doc: doc}
}

// ListUsers returns every user. Records without an ID get one assigned and the document is rewritten,
// so IDs stay stable from then on.
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}

	backfilled := 0
	for i := range users {
		if users[i].ID == "" {
			users[i].ID = uuid.New().String()
			backfilled++
		}
	}
	if backfilled > 0 {
		if err := r.doc.Save(ctx, users); err != nil {
			return nil, fmt.Errorf("failed to persist backfilled user IDs: %w", err)
		}
		slog.Info("Assigned IDs to legacy user records", "count", backfilled)
	}

	return users, nil
}

// CreateUser appends a new user. The email must not be registered yet.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range users {
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
	}

	users = append(users, *user)
	if err := r.doc.Save(ctx, users); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address (case-insensitive).
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	email = models.NormalizeEmail(email)
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// UpdateUser overwrites the record with the same ID in place.
// Returns ErrDuplicateKey if another user already holds the new email.
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, u := range users {
		if u.ID == user.ID {
			idx = i
			continue
		}
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	users[idx] = *user
	if err := r.doc.Save(ctx, users); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
