package dashboard

import (
	"context"
	"errors"

	"github.com/mmynk/grocer/internal/auth"
	"github.com/mmynk/grocer/internal/middleware"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/service"
)

func (d *Dashboard) updateProfile(ctx context.Context) error {
	d.p.Println("\n--- Update Profile ---")
	d.p.Println("1. Change Name")
	d.p.Println("2. Change Email")
	d.p.Println("3. Change Password")
	d.p.Println("4. Back")

	choice, err := d.p.BoundedInt("Enter choice (1-4): ", 1, 5)
	if err != nil {
		return err
	}

	userID := middleware.GetUserID(ctx)
	var updated *models.User

	switch service.ProfileField(choice) {
	case service.FieldName:
		name, err := d.p.Line("Enter new name: ")
		if err != nil {
			return err
		}
		if updated, err = d.accounts.UpdateProfile(ctx, userID, service.FieldName, name); err != nil {
			return err
		}
		d.p.Println("✅ Name updated successfully!")

	case service.FieldEmail:
		for {
			email, err := d.p.Line("Enter new email: ")
			if err != nil {
				return err
			}
			updated, err = d.accounts.UpdateProfile(ctx, userID, service.FieldEmail, email)
			if errors.Is(err, auth.ErrInvalidEmail) {
				d.p.Println("❌ Invalid email format.")
				continue
			}
			if errors.Is(err, auth.ErrEmailExists) {
				d.p.Println("⚠️ Email already exists! Try another.")
				continue
			}
			if err != nil {
				return err
			}
			break
		}
		d.p.Println("✅ Email updated successfully!")

	case service.FieldPassword:
		for {
			password, err := d.p.Raw("Enter new password: ")
			if err != nil {
				return err
			}
			updated, err = d.accounts.UpdateProfile(ctx, userID, service.FieldPassword, password)
			if errors.Is(err, auth.ErrWeakPassword) {
				d.p.Println("❌ Weak password. Try again.")
				continue
			}
			if err != nil {
				return err
			}
			break
		}
		d.p.Println("✅ Password updated successfully!")

	default:
		return nil
	}

	// The session carries the email, so it is reissued for the updated account.
	return d.startSession(updated)
}
