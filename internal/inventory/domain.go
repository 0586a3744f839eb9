// Package inventory manages the product catalog and stock quantities. The
// bookkeeping core invokes it through the generator's stock port; both
// sides persist independently, with no shared transaction.
package inventory

import (
	"errors"
	"time"
)

// Direction enumerates stock movement directions.
type Direction string

const (
	// DirectionEntry increases stock.
	DirectionEntry Direction = "ENTRY"
	// DirectionExit decreases stock.
	DirectionExit Direction = "EXIT"
)

// Product is one catalog record with its current stock position.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UnitCost  float64   `json:"unit_cost"`
	Stock     float64   `json:"stock"`
	MinStock  float64   `json:"min_stock"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	// ErrProductNotFound indicates the catalog has no record for the id.
	ErrProductNotFound = errors.New("inventory: product not found")
	// ErrInsufficientStock indicates an exit would drive stock negative.
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
	// ErrInvalidQuantity indicates a non-positive movement quantity.
	ErrInvalidQuantity = errors.New("inventory: quantity must be positive")
)
