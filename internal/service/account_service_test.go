package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mmynk/grocer/internal/auth"
	"github.com/mmynk/grocer/internal/metrics"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

// setupAccountService creates an AccountService over an in-memory users document.
func setupAccountService(t *testing.T) (*AccountService, *storage.UserRepository) {
	t.Helper()

	users := storage.NewUserRepository(storage.NewMemoryDocument[models.User](storage.UsersDocument))
	svc := NewAccountService(auth.NewPasswordAuthenticator(users), users, metrics.New(), slog.Default())
	return svc, users
}

func TestSignup(t *testing.T) {
	svc, users := setupAccountService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "  Asha  ", "Asha@Example.com", "Secret@123")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if user.ID == "" {
		t.Error("expected non-empty user ID")
	}
	if user.Name != "Asha" {
		t.Errorf("name: expected 'Asha', got '%s'", user.Name)
	}
	if user.Email != "asha@example.com" {
		t.Errorf("email: expected 'asha@example.com', got '%s'", user.Email)
	}
	if user.Admin {
		t.Error("expected signup to create a non-admin user")
	}

	stored, err := users.GetUserByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if stored.ID != user.ID {
		t.Errorf("stored ID: expected '%s', got '%s'", user.ID, stored.ID)
	}
}

func TestSignup_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "invalid email", email: "asha@example", password: "Secret@123", wantErr: auth.ErrInvalidEmail},
		{name: "weak password", email: "asha@example.com", password: "secret", wantErr: auth.ErrWeakPassword},
		{name: "password too long", email: "asha@example.com", password: "Secret@1234567", wantErr: auth.ErrWeakPassword},
		{name: "duplicate email in other case", email: "TAKEN@example.com", password: "Secret@123", wantErr: auth.ErrEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := setupAccountService(t)
			ctx := context.Background()

			if _, err := svc.Signup(ctx, "Taken", "taken@example.com", "Secret@123"); err != nil {
				t.Fatalf("Signup failed: %v", err)
			}

			_, err := svc.Signup(ctx, "Asha", tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			all, err := users.ListUsers(ctx)
			if err != nil {
				t.Fatalf("ListUsers failed: %v", err)
			}
			if len(all) != 1 {
				t.Errorf("expected 1 stored user, got %d", len(all))
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := setupAccountService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Asha", "asha@example.com", "Secret@123")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "exact match", email: "asha@example.com", password: "Secret@123"},
		{name: "email is case-insensitive", email: "ASHA@Example.COM", password: "Secret@123"},
		{name: "password is case-sensitive", email: "asha@example.com", password: "secret@123", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "Secret@123", wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if user.ID != created.ID {
				t.Errorf("ID: expected '%s', got '%s'", created.ID, user.ID)
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	tests := []struct {
		name    string
		field   ProfileField
		value   string
		wantErr error
		check   func(t *testing.T, u *models.User)
	}{
		{
			name:  "name",
			field: FieldName,
			value: "Asha Rao",
			check: func(t *testing.T, u *models.User) {
				if u.Name != "Asha Rao" {
					t.Errorf("name: expected 'Asha Rao', got '%s'", u.Name)
				}
			},
		},
		{
			name:  "email",
			field: FieldEmail,
			value: "Rao@Example.com",
			check: func(t *testing.T, u *models.User) {
				if u.Email != "rao@example.com" {
					t.Errorf("email: expected 'rao@example.com', got '%s'", u.Email)
				}
			},
		},
		{
			name:    "weak password",
			field:   FieldPassword,
			value:   "NewPass#1",
			wantErr: auth.ErrWeakPassword,
		},
		{
			name:  "strong password",
			field: FieldPassword,
			value: "NewPass@1",
			check: func(t *testing.T, u *models.User) {
				if u.Password != "NewPass@1" {
					t.Errorf("password: expected 'NewPass@1', got '%s'", u.Password)
				}
			},
		},
		{name: "invalid email", field: FieldEmail, value: "not-an-email", wantErr: auth.ErrInvalidEmail},
		{name: "email held by another user", field: FieldEmail, value: "other@example.com", wantErr: auth.ErrEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := setupAccountService(t)
			ctx := context.Background()

			user, err := svc.Signup(ctx, "Asha", "asha@example.com", "Secret@123")
			if err != nil {
				t.Fatalf("Signup failed: %v", err)
			}
			if _, err := svc.Signup(ctx, "Other", "other@example.com", "Secret@123"); err != nil {
				t.Fatalf("Signup failed: %v", err)
			}

			updated, err := svc.UpdateProfile(ctx, user.ID, tt.field, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				stored, err := users.GetUserByID(ctx, user.ID)
				if err != nil {
					t.Fatalf("GetUserByID failed: %v", err)
				}
				if *stored != *user {
					t.Errorf("expected stored user unchanged, got %+v", stored)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateProfile failed: %v", err)
			}
			tt.check(t, updated)

			stored, err := users.GetUserByID(ctx, user.ID)
			if err != nil {
				t.Fatalf("GetUserByID failed: %v", err)
			}
			tt.check(t, stored)
		})
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc, _ := setupAccountService(t)

	_, err := svc.UpdateProfile(context.Background(), "missing-id", FieldName, "Ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc, users := setupAccountService(t)
	ctx := context.Background()

	admin, err := svc.EnsureAdmin(ctx, "Owner", "Owner@Store.com", "Admin@123")
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if !admin.Admin {
		t.Error("expected admin flag on created account")
	}

	again, err := svc.EnsureAdmin(ctx, "Owner", "owner@store.com", "Admin@123")
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if again.ID != admin.ID {
		t.Errorf("expected existing admin to be reused, got new ID '%s'", again.ID)
	}

	all, err := users.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 user, got %d", len(all))
	}
}

func TestEnsureAdmin_PromotesExistingUser(t *testing.T) {
	svc, _ := setupAccountService(t)
	ctx := context.Background()

	customer, err := svc.Signup(ctx, "Asha", "asha@example.com", "Secret@123")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	admin, err := svc.EnsureAdmin(ctx, "ignored", "asha@example.com", "ignored")
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if admin.ID != customer.ID || !admin.Admin {
		t.Errorf("expected %s promoted to admin, got %+v", customer.ID, admin)
	}

	user, err := svc.Login(ctx, "asha@example.com", "Secret@123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !user.Admin {
		t.Error("expected promoted user to log in as admin")
	}
}
