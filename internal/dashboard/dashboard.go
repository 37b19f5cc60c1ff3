// Package dashboard is the interactive terminal front end of the store.
// It only asks questions and prints answers; every rule lives in the service package.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/grocer/internal/auth"
	"github.com/mmynk/grocer/internal/middleware"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/prompt"
	"github.com/mmynk/grocer/internal/receipt"
	"github.com/mmynk/grocer/internal/service"
	"github.com/mmynk/grocer/internal/validate"
)

// Dashboard routes menu choices to the services for one terminal.
type Dashboard struct {
	p         *prompt.Prompter
	accounts  *service.AccountService
	inventory *service.InventoryService
	purchases *service.PurchaseService
	sessions  *auth.SessionManager
	receipts  *receipt.Formatter

	// Set while someone is logged in.
	user  *models.User
	token string
}

// New creates a Dashboard.
func New(
	p *prompt.Prompter,
	accounts *service.AccountService,
	inventory *service.InventoryService,
	purchases *service.PurchaseService,
	sessions *auth.SessionManager,
	receipts *receipt.Formatter,
) *Dashboard {
	return &Dashboard{
		p:         p,
		accounts:  accounts,
		inventory: inventory,
		purchases: purchases,
		sessions:  sessions,
		receipts:  receipts,
	}
}

// Run shows the main menu until the user exits.
// It returns io.EOF when input runs out and any storage error it cannot recover from.
func (d *Dashboard) Run(ctx context.Context) error {
	for {
		d.p.Println("\n===== Grocery Management System =====")
		d.p.Println("1. Signup")
		d.p.Println("2. Login")
		d.p.Println("3. Admin Login")
		d.p.Println("4. Exit")

		action, err := d.p.BoundedInt("Enter the action (1-4): ", 1, 5)
		if err != nil {
			return err
		}

		switch action {
		case 1:
			err = d.signup(ctx)
		case 2, 3:
			err = d.login(ctx)
		case 4:
			d.p.Println("Thank you for visiting.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (d *Dashboard) signup(ctx context.Context) error {
	name, err := d.p.Line("Enter name: ")
	if err != nil {
		return err
	}

	var email string
	for {
		email, err = d.p.Line("Enter email address: ")
		if err != nil {
			return err
		}
		email = strings.ToLower(email)
		if validate.Email(email) {
			break
		}
		d.p.Printf("Invalid Email address.\n\n")
	}

	var password string
	for {
		password, err = d.p.Raw("Enter password: ")
		if err != nil {
			return err
		}
		if validate.Password(password) {
			break
		}
		d.printPasswordRules("❌ Invalid password. Rules:")
	}

	_, err = d.accounts.Signup(ctx, name, email, password)
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		d.p.Println("⚠️ Email already registered! Please use a different email.")
		return nil
	case err != nil:
		return err
	}

	d.p.Printf("✅ User signed up successfully!\n\n")
	return nil
}

func (d *Dashboard) login(ctx context.Context) error {
	email, err := d.p.Line("Enter email address: ")
	if err != nil {
		return err
	}
	password, err := d.p.Line("Enter password: ")
	if err != nil {
		return err
	}

	user, err := d.accounts.Login(ctx, email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		d.p.Println("❌ Invalid email or password.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := d.startSession(user); err != nil {
		return err
	}
	defer d.endSession()

	d.p.Printf("\nWelcome %s\n", user.Name)
	if user.Admin {
		return d.adminMenu(ctx)
	}
	return d.customerMenu(ctx)
}

func (d *Dashboard) startSession(user *models.User) error {
	token, err := d.sessions.Generate(user)
	if err != nil {
		return err
	}
	d.user = user
	d.token = token
	return nil
}

func (d *Dashboard) endSession() {
	d.user = nil
	d.token = ""
}

func (d *Dashboard) currentToken() string {
	return d.token
}

// guard wraps a menu action with logging and the session checks.
func (d *Dashboard) guard(name string, adminOnly bool, action middleware.Action) middleware.Action {
	mws := []middleware.Middleware{
		middleware.RequireSession(d.sessions, d.currentToken),
		middleware.Logging(name),
	}
	if adminOnly {
		mws = append(mws, middleware.RequireAdmin())
	}
	return middleware.Chain(action, mws...)
}

// menuEntry is one numbered line of a dashboard menu. A nil action logs out.
type menuEntry struct {
	label  string
	action middleware.Action
}

// menu loops over entries until logout. A rejected session returns to the main menu.
func (d *Dashboard) menu(ctx context.Context, title string, entries []menuEntry) error {
	for {
		d.p.Printf("\n===== %s =====\n", title)
		for i, entry := range entries {
			d.p.Printf("%d. %s\n", i+1, entry.label)
		}

		choice, err := d.p.BoundedInt(menuPrompt("Enter the action", len(entries)), 1, len(entries)+1)
		if err != nil {
			return err
		}

		entry := entries[choice-1]
		if entry.action == nil {
			return nil
		}

		err = entry.action(ctx)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken),
			errors.Is(err, auth.ErrNotAdmin), errors.Is(err, service.ErrUserNotFound):
			d.p.Println("❌ Your session is no longer valid. Please log in again.")
			return nil
		default:
			return err
		}
	}
}

func (d *Dashboard) printPasswordRules(header string) {
	d.p.Println(header)
	for _, rule := range validate.PasswordRules {
		d.p.Printf("   - %s\n", rule)
	}
}

func menuPrompt(label string, n int) string {
	return fmt.Sprintf("%s(1-%d): ", label, n)
}
