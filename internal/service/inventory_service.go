package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mmynk/grocer/internal/calculator"
	"github.com/mmynk/grocer/internal/metrics"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

var (
	ErrItemExists      = errors.New("item already exists")
	ErrInvalidName     = errors.New("item name must not be empty")
	ErrItemNotFound    = errors.New("no item at that index")
	ErrNoItems         = errors.New("no items found in the store")
	ErrInvalidQuantity = calculator.ErrInvalidQuantity
	ErrUpdateCancelled = errors.New("update cancelled")
	ErrUndoUnavailable = errors.New("nothing to undo")
)

// StockOp is one of the admin edits applied by UpdateStock.
type StockOp int

const (
	OpSetQuantity StockOp = iota + 1
	OpSetPrice
	OpSetBoth
	OpRename
	OpDelete
)

func (op StockOp) String() string {
	switch op {
	case OpSetQuantity:
		return "set_quantity"
	case OpSetPrice:
		return "set_price"
	case OpSetBoth:
		return "set_both"
	case OpRename:
		return "rename"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// StockUpdate describes a single edit to the catalog.
type StockUpdate struct {
	// Index is the 1-based position in the catalog as listed.
	Index int
	Op    StockOp

	Amount float64
	Rate   float64

	// Name and Unit apply to OpRename. An empty Unit keeps the current one.
	Name string
	Unit models.Unit

	// Confirmed must be set once the admin has accepted the change.
	Confirmed bool
}

// UpdateResult is the outcome of an applied update. It is also the handle passed to Undo.
type UpdateResult struct {
	Before  models.Item
	Catalog []models.Item

	op       StockOp
	snapshot []models.Item
}

// InventoryService manages the item catalog.
type InventoryService struct {
	items   storage.Document[models.Item]
	metrics *metrics.Recorder

	// last is the only update Undo will accept.
	last *UpdateResult
}

// NewInventoryService creates a new InventoryService over the items document.
func NewInventoryService(items storage.Document[models.Item], recorder *metrics.Recorder) *InventoryService {
	return &InventoryService{items: items, metrics: recorder}
}

// TitleName normalizes an item name the way it is stored.
func TitleName(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// AddItem appends a new item to the catalog.
func (s *InventoryService) AddItem(ctx context.Context, name string, kind models.UnitKind, amount, rate float64) (*models.Item, error) {
	slog.Info("AddItem request received", "name", name, "kind", kind.String())

	unit, err := kind.Unit()
	if err != nil {
		return nil, err
	}
	if !validAmount(amount) || !validAmount(rate) {
		return nil, fmt.Errorf("%w: amount and rate must be finite and not negative", ErrInvalidQuantity)
	}
	if TitleName(name) == "" {
		return nil, ErrInvalidName
	}

	items, err := loadCatalog(ctx, s.items)
	if err != nil {
		slog.Error("AddItem failed", "error", err)
		return nil, err
	}

	item := models.Item{
		ID:     uuid.New().String(),
		Name:   TitleName(name),
		Amount: amount,
		Unit:   unit,
		Rate:   rate,
	}
	for _, existing := range items {
		if existing.Name == item.Name {
			return nil, fmt.Errorf("%w: %s", ErrItemExists, item.Name)
		}
	}

	items = append(items, item)
	if err := s.items.Save(ctx, items); err != nil {
		slog.Error("AddItem failed", "error", err)
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	s.last = nil

	slog.Info("Item added", "item_id", item.ID, "name", item.Name)
	return &item, nil
}

// ListItems returns the catalog in stored order.
func (s *InventoryService) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := loadCatalog(ctx, s.items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// Describe returns the question the admin confirms before the update is applied.
func (s *InventoryService) Describe(item models.Item, u StockUpdate) string {
	switch u.Op {
	case OpSetQuantity:
		return fmt.Sprintf("Set quantity of %s to %v %s?", item.Name, u.Amount, item.Unit)
	case OpSetPrice:
		return fmt.Sprintf("Set price of %s to %v per %s?", item.Name, u.Rate, item.Unit)
	case OpSetBoth:
		return fmt.Sprintf("Set %s to %v %s at %v per %s?", item.Name, u.Amount, item.Unit, u.Rate, item.Unit)
	case OpRename:
		unit := item.Unit
		if u.Unit != "" {
			unit = u.Unit
		}
		return fmt.Sprintf("Rename %s (%s) to %s (%s)?", item.Name, item.Unit, TitleName(u.Name), unit)
	case OpDelete:
		return fmt.Sprintf("Delete %s from the store?", item.Name)
	default:
		return fmt.Sprintf("Apply unknown change to %s?", item.Name)
	}
}

// UpdateStock applies u to the catalog and saves it.
// The catalog as it was before the change is kept so Undo can restore it.
func (s *InventoryService) UpdateStock(ctx context.Context, u StockUpdate) (*UpdateResult, error) {
	slog.Info("UpdateStock request received", "index", u.Index, "op", u.Op.String())

	items, err := loadCatalog(ctx, s.items)
	if err != nil {
		slog.Error("UpdateStock failed", "error", err)
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	i, err := itemAt(items, u.Index)
	if err != nil {
		return nil, err
	}

	if !u.Confirmed {
		s.metrics.StockUpdate(u.Op.String(), "cancelled")
		return nil, ErrUpdateCancelled
	}

	snapshot := make([]models.Item, len(items))
	copy(snapshot, items)
	before := items[i]

	updated, err := applyUpdate(items, i, u)
	if err != nil {
		s.metrics.StockUpdate(u.Op.String(), "rejected")
		return nil, err
	}

	if err := s.items.Save(ctx, updated); err != nil {
		slog.Error("UpdateStock failed", "error", err)
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	result := &UpdateResult{Before: before, Catalog: updated, op: u.Op, snapshot: snapshot}
	s.last = result
	s.metrics.StockUpdate(u.Op.String(), "applied")

	slog.Info("Stock updated", "item_id", before.ID, "op", u.Op.String())
	return result, nil
}

func applyUpdate(items []models.Item, i int, u StockUpdate) ([]models.Item, error) {
	switch u.Op {
	case OpSetQuantity:
		if !validAmount(u.Amount) {
			return nil, fmt.Errorf("%w: amount must be finite and not negative", ErrInvalidQuantity)
		}
		items[i].Amount = u.Amount
	case OpSetPrice:
		if !validAmount(u.Rate) {
			return nil, fmt.Errorf("%w: rate must be finite and not negative", ErrInvalidQuantity)
		}
		items[i].Rate = u.Rate
	case OpSetBoth:
		if !validAmount(u.Amount) || !validAmount(u.Rate) {
			return nil, fmt.Errorf("%w: amount and rate must be finite and not negative", ErrInvalidQuantity)
		}
		items[i].Amount = u.Amount
		items[i].Rate = u.Rate
	case OpRename:
		name := TitleName(u.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		for j, other := range items {
			if j != i && other.Name == name {
				return nil, fmt.Errorf("%w: %s", ErrItemExists, name)
			}
		}
		items[i].Name = name
		if u.Unit != "" {
			items[i].Unit = u.Unit
		}
	case OpDelete:
		items = append(items[:i], items[i+1:]...)
	default:
		return nil, fmt.Errorf("unknown stock operation: %d", u.Op)
	}
	return items, nil
}

// validAmount rejects negatives and values JSON cannot encode.
func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Undo restores the catalog saved before result was applied.
// It only accepts the most recent update, and only once.
func (s *InventoryService) Undo(ctx context.Context, result *UpdateResult) error {
	if result == nil || result != s.last {
		return ErrUndoUnavailable
	}

	if err := s.items.Save(ctx, result.snapshot); err != nil {
		slog.Error("Undo failed", "error", err)
		return fmt.Errorf("failed to restore catalog: %w", err)
	}
	s.last = nil
	s.metrics.StockUpdate(result.op.String(), "undone")

	slog.Info("Stock update undone", "item_id", result.Before.ID)
	return nil
}
