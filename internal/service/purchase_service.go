package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/grocer/internal/calculator"
	"github.com/mmynk/grocer/internal/metrics"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

var (
	ErrNoItemsAvailable = errors.New("no items available")
	ErrOutOfStock       = calculator.ErrOutOfStock
	ErrEmptyCart        = errors.New("no items were purchased")
	ErrCheckoutClosed   = errors.New("checkout already completed")
	ErrNoHistory        = errors.New("no purchase history")
	ErrNoBillsOnDate    = errors.New("no bills on that date")
)

// PurchaseService runs checkouts and reads purchase history.
type PurchaseService struct {
	items   storage.Document[models.Item]
	bills   storage.Document[models.LedgerEntry]
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(items storage.Document[models.Item], bills storage.Document[models.LedgerEntry], recorder *metrics.Recorder) *PurchaseService {
	return &PurchaseService{
		items:   items,
		bills:   bills,
		metrics: recorder,
		now:     time.Now,
	}
}

// Checkout is one shopping session. Nothing is written until Complete.
type Checkout struct {
	svc     *PurchaseService
	catalog []models.Item
	cart    *calculator.Cart
	done    bool
}

// StartCheckout loads the catalog and opens a session over it.
func (s *PurchaseService) StartCheckout(ctx context.Context) (*Checkout, error) {
	slog.Info("StartCheckout request received")

	catalog, err := loadCatalog(ctx, s.items)
	if err != nil {
		slog.Error("StartCheckout failed", "error", err)
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, ErrNoItemsAvailable
	}

	return &Checkout{svc: s, catalog: catalog, cart: calculator.NewCart()}, nil
}

// Items returns the catalog with amounts net of what has been staged so far.
func (c *Checkout) Items() []models.Item {
	items := make([]models.Item, len(c.catalog))
	for i, item := range c.catalog {
		item.Amount = c.cart.Remaining(item)
		items[i] = item
	}
	return items
}

// Item returns the catalog entry at the 1-based index, with its remaining amount.
func (c *Checkout) Item(index int) (models.Item, error) {
	i, err := itemAt(c.catalog, index)
	if err != nil {
		return models.Item{}, err
	}
	item := c.catalog[i]
	item.Amount = c.cart.Remaining(item)
	return item, nil
}

// Remaining is the stock left for the item at index after staged quantities.
func (c *Checkout) Remaining(index int) (float64, error) {
	item, err := c.Item(index)
	if err != nil {
		return 0, err
	}
	return item.Amount, nil
}

// MaxQuantity is the largest whole quantity still purchasable for the item at index.
func (c *Checkout) MaxQuantity(index int) (int, error) {
	i, err := itemAt(c.catalog, index)
	if err != nil {
		return 0, err
	}
	return c.cart.MaxQuantity(c.catalog[i]), nil
}

// Add stages quantity units of the item at index.
func (c *Checkout) Add(index, quantity int) (models.BillLine, error) {
	if c.done {
		return models.BillLine{}, ErrCheckoutClosed
	}
	i, err := itemAt(c.catalog, index)
	if err != nil {
		return models.BillLine{}, err
	}
	return c.cart.Add(c.catalog[i], quantity)
}

// Lines returns the staged bill lines.
func (c *Checkout) Lines() []models.BillLine {
	return c.cart.Lines()
}

// Len is the number of staged lines.
func (c *Checkout) Len() int {
	return c.cart.Len()
}

// GrandTotal is the running total of the session.
func (c *Checkout) GrandTotal() float64 {
	return c.cart.GrandTotal()
}

// Complete writes the reduced catalog and appends the bill to the customer's ledger entry.
func (c *Checkout) Complete(ctx context.Context, userID, name, email string) (*models.Bill, error) {
	s := c.svc
	slog.Info("Checkout request received", "user_id", userID, "lines", c.cart.Len())

	if c.done {
		return nil, ErrCheckoutClosed
	}
	if c.cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	catalog, err := loadCatalog(ctx, s.items)
	if err != nil {
		slog.Error("Checkout failed", "error", err)
		return nil, err
	}
	updated, err := c.cart.Apply(catalog)
	if err != nil {
		slog.Error("Checkout failed", "error", err)
		return nil, err
	}

	bill := models.Bill{
		Date:       s.now().Format(models.BillDateLayout),
		Items:      c.cart.Lines(),
		GrandTotal: c.cart.GrandTotal(),
	}

	if err := s.items.Save(ctx, updated); err != nil {
		slog.Error("Checkout failed", "error", err)
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}
	if err := s.appendBill(ctx, userID, name, email, bill); err != nil {
		slog.Error("Checkout failed", "error", err)
		return nil, err
	}
	c.done = true
	c.catalog = updated

	s.metrics.Checkout(bill)
	slog.Info("Checkout completed", "user_id", userID, "grand_total", bill.GrandTotal)
	return &bill, nil
}

func (s *PurchaseService) appendBill(ctx context.Context, userID, name, email string, bill models.Bill) error {
	ledger, err := s.bills.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bills: %w", err)
	}

	found := false
	for i := range ledger {
		if !ledger[i].Owns(userID, email) {
			continue
		}
		ledger[i].UserID = userID
		ledger[i].Name = name
		ledger[i].Email = models.NormalizeEmail(email)
		ledger[i].Bills = append(ledger[i].Bills, bill)
		found = true
		break
	}
	if !found {
		ledger = append(ledger, models.LedgerEntry{
			UserID: userID,
			Email:  models.NormalizeEmail(email),
			Name:   name,
			Bills:  []models.Bill{bill},
		})
	}

	if err := s.bills.Save(ctx, ledger); err != nil {
		return fmt.Errorf("failed to save bills: %w", err)
	}
	return nil
}

func (s *PurchaseService) ledgerFor(ctx context.Context, userID, email string) ([]models.Bill, error) {
	ledger, err := s.bills.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}
	for _, entry := range ledger {
		if entry.Owns(userID, email) && len(entry.Bills) > 0 {
			return entry.Bills, nil
		}
	}
	return nil, ErrNoHistory
}

// History returns the customer's bills, optionally only those from day (YYYY-MM-DD).
func (s *PurchaseService) History(ctx context.Context, userID, email, day string) ([]models.Bill, error) {
	slog.Info("History request received", "user_id", userID, "day", day)

	bills, err := s.ledgerFor(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	if day == "" {
		return bills, nil
	}

	filtered := calculator.FilterByDay(bills, day)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBillsOnDate, day)
	}
	return filtered, nil
}

// Summary totals the customer's whole purchase history.
func (s *PurchaseService) Summary(ctx context.Context, userID, email string) (calculator.SpendingSummary, error) {
	bills, err := s.ledgerFor(ctx, userID, email)
	if err != nil {
		return calculator.SpendingSummary{}, err
	}
	return calculator.SummarizeBills(bills), nil
}
