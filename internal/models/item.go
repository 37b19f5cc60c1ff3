package models

import "fmt"

// Unit is the measure an item is stocked and sold in.
type Unit string

const (
	UnitPieces    Unit = "pcs"
	UnitKilograms Unit = "kg"
	UnitLitres    Unit = "L"
)

// UnitKind is the kind of amount an administrator picks when adding an item.
type UnitKind int

const (
	KindCount UnitKind = iota + 1
	KindWeight
	KindVolume
)

// Unit maps a kind onto the unit it is stocked in.
func (k UnitKind) Unit() (Unit, error) {
	switch k {
	case KindCount:
		return UnitPieces, nil
	case KindWeight:
		return UnitKilograms, nil
	case KindVolume:
		return UnitLitres, nil
	default:
		return "", fmt.Errorf("unknown unit kind: %d", k)
	}
}

// String returns the label used in menus.
func (k UnitKind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindWeight:
		return "weight"
	case KindVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// Item represents one catalog entry.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id,omitempty"`

	// Name is title-cased and unique within the catalog.
	Name string `json:"name"`

	// Amount is the remaining stock in Unit. Never negative.
	Amount float64 `json:"amount"`

	// Unit is one of pcs, kg or L.
	Unit Unit `json:"unit"`

	// Rate is the price per Unit.
	Rate float64 `json:"rate"`
}
