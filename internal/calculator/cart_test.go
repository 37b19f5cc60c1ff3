package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/grocer/internal/models"
)

type add struct {
	item models.Item
	qty  int
}

func TestCart_Add(t *testing.T) {
	rice := models.Item{ID: "rice", Name: "Rice", Amount: 10, Unit: models.UnitKilograms, Rate: 50}
	milk := models.Item{ID: "milk", Name: "Milk", Amount: 2.5, Unit: models.UnitLitres, Rate: 60}
	salt := models.Item{ID: "salt", Name: "Salt", Amount: 0, Unit: models.UnitKilograms, Rate: 20}

	tests := []struct {
		name         string
		adds         []add
		wantErr      error
		validateFunc func(t *testing.T, c *Cart)
	}{
		{
			name: "single line",
			adds: []add{{rice, 3}},
			validateFunc: func(t *testing.T, c *Cart) {
				if c.Len() != 1 {
					t.Fatalf("Len() = %d, want 1", c.Len())
				}
				if math.Abs(c.GrandTotal()-150.0) > 0.01 {
					t.Errorf("GrandTotal() = %v, want 150", c.GrandTotal())
				}
				if math.Abs(c.Remaining(rice)-7.0) > 0.01 {
					t.Errorf("Remaining(rice) = %v, want 7", c.Remaining(rice))
				}
			},
		},
		{
			name: "repeated item sees shrinking availability",
			adds: []add{{rice, 6}, {rice, 4}},
			validateFunc: func(t *testing.T, c *Cart) {
				if c.Reserved("rice") != 10 {
					t.Errorf("Reserved(rice) = %d, want 10", c.Reserved("rice"))
				}
				if c.MaxQuantity(rice) != 0 {
					t.Errorf("MaxQuantity(rice) = %d, want 0", c.MaxQuantity(rice))
				}
			},
		},
		{
			name:    "repeated item exceeding what is left",
			adds:    []add{{rice, 6}, {rice, 5}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "fractional stock rounds down",
			adds:    []add{{milk, 3}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "zero quantity",
			adds:    []add{{rice, 0}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "out of stock",
			adds:    []add{{salt, 1}},
			wantErr: ErrOutOfStock,
		},
		{
			name: "mixed lines",
			adds: []add{{rice, 2}, {milk, 2}},
			validateFunc: func(t *testing.T, c *Cart) {
				// Rice: 2 × 50 = 100, Milk: 2 × 60 = 120
				if math.Abs(c.GrandTotal()-220.0) > 0.01 {
					t.Errorf("GrandTotal() = %v, want 220", c.GrandTotal())
				}
				lines := c.Lines()
				if lines[1].Name != "Milk" || lines[1].Unit != models.UnitLitres || lines[1].Price != 60 {
					t.Errorf("unexpected second line: %+v", lines[1])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart()
			var err error
			for _, a := range tt.adds {
				if _, err = c.Add(a.item, a.qty); err != nil {
					break
				}
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add() error = %v, want %v", err, tt.wantErr)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, c)
			}
		})
	}
}

func TestCart_Apply(t *testing.T) {
	catalog := []models.Item{
		{ID: "rice", Name: "Rice", Amount: 10, Unit: models.UnitKilograms, Rate: 50},
		{ID: "eggs", Name: "Eggs", Amount: 12, Unit: models.UnitPieces, Rate: 15},
	}

	c := NewCart()
	if _, err := c.Add(catalog[0], 3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := c.Add(catalog[1], 5); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := c.Add(catalog[0], 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	updated, err := c.Apply(catalog)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if updated[0].Amount != 5 {
		t.Errorf("Rice amount = %v, want 5", updated[0].Amount)
	}
	if updated[1].Amount != 7 {
		t.Errorf("Eggs amount = %v, want 7", updated[1].Amount)
	}
	if catalog[0].Amount != 10 {
		t.Errorf("Apply mutated its input: rice amount = %v", catalog[0].Amount)
	}

	t.Run("item removed from catalog", func(t *testing.T) {
		if _, err := c.Apply(catalog[1:]); !errors.Is(err, ErrUnknownItem) {
			t.Fatalf("expected ErrUnknownItem, got %v", err)
		}
	})

	t.Run("stock dropped below reservation", func(t *testing.T) {
		shrunk := []models.Item{
			{ID: "rice", Name: "Rice", Amount: 4, Unit: models.UnitKilograms, Rate: 50},
			catalog[1],
		}
		if _, err := c.Apply(shrunk); !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
	})
}
