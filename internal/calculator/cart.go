package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/grocer/internal/models"
)

var (
	ErrOutOfStock        = errors.New("item is out of stock")
	ErrInvalidQuantity   = errors.New("quantity out of range")
	ErrInsufficientStock = errors.New("not enough stock to apply purchase")
	ErrUnknownItem       = errors.New("item no longer in catalog")
)

// Cart stages the lines of one checkout session.
// Quantities are reserved per item ID and only subtracted from the catalog by Apply,
// so the catalog itself is never touched while the customer is still choosing.
type Cart struct {
	lines    []models.BillLine
	reserved map[string]int
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{reserved: make(map[string]int)}
}

// Reserved is the quantity of an item already staged in this cart.
func (c *Cart) Reserved(itemID string) int {
	return c.reserved[itemID]
}

// Remaining is the item's stock net of what this cart has staged.
func (c *Cart) Remaining(item models.Item) float64 {
	return item.Amount - float64(c.reserved[item.ID])
}

// MaxQuantity is the largest whole quantity that can still be added for item.
func (c *Cart) MaxQuantity(item models.Item) int {
	remaining := c.Remaining(item)
	if remaining <= 0 {
		return 0
	}
	return int(remaining)
}

// Add stages quantity units of item. The line total is quantity × rate.
func (c *Cart) Add(item models.Item, quantity int) (models.BillLine, error) {
	limit := c.MaxQuantity(item)
	if limit == 0 {
		return models.BillLine{}, fmt.Errorf("%w: %s", ErrOutOfStock, item.Name)
	}
	if quantity < 1 || quantity > limit {
		return models.BillLine{}, fmt.Errorf("%w: %d not in 1-%d", ErrInvalidQuantity, quantity, limit)
	}

	line := models.BillLine{
		Name:     item.Name,
		Quantity: quantity,
		Unit:     item.Unit,
		Price:    item.Rate,
		Total:    float64(quantity) * item.Rate,
	}
	c.lines = append(c.lines, line)
	c.reserved[item.ID] += quantity
	return line, nil
}

// Lines returns the staged lines in the order they were added.
func (c *Cart) Lines() []models.BillLine {
	out := make([]models.BillLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len is the number of staged lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// GrandTotal is the sum of every staged line total.
func (c *Cart) GrandTotal() float64 {
	return GrandTotal(c.lines)
}

// Apply returns a copy of catalog with every reserved quantity subtracted.
// It fails without partial changes if an item vanished or no longer has enough stock.
func (c *Cart) Apply(catalog []models.Item) ([]models.Item, error) {
	updated := make([]models.Item, len(catalog))
	copy(updated, catalog)

	index := make(map[string]int, len(updated))
	for i, item := range updated {
		index[item.ID] = i
	}

	for id, qty := range c.reserved {
		i, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
		}
		if updated[i].Amount < float64(qty) {
			return nil, fmt.Errorf("%w: %s has %v, need %d", ErrInsufficientStock, updated[i].Name, updated[i].Amount, qty)
		}
		updated[i].Amount -= float64(qty)
	}

	return updated, nil
}

// GrandTotal sums the totals of lines.
func GrandTotal(lines []models.BillLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Total
	}
	return total
}
