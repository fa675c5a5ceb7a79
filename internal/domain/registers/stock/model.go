// Package stock provides the stock movement register.
// Every change to an ingredient's on-hand quantity is a movement row;
// the ingredient catalog carries the running balance.
package stock

import (
	"context"
	"time"

	"fornada/internal/core/apperror"
	"fornada/internal/core/id"
)

// Direction of a stock movement.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Movement is one change to an ingredient's stock level.
type Movement struct {
	LineID       id.ID     `db:"line_id" json:"lineId"`
	IngredientID id.ID     `db:"ingredient_id" json:"ingredientId"`
	Direction    Direction `db:"direction" json:"direction"`

	// Quantity is always positive; Direction carries the sign.
	Quantity float64 `db:"quantity" json:"quantity"`

	// Reason is a human-readable cause ("purchase", "order ORD-2026-00012",
	// "top-up for shortfall", ...)
	Reason string `db:"reason" json:"reason"`

	// RecorderID links the movement to the document that produced it,
	// nil for manual adjustments.
	RecorderID *id.ID `db:"recorder_id" json:"recorderId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SignedQuantity is the movement's effect on the balance.
func (m *Movement) SignedQuantity() float64 {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}

// Validate checks movement invariants.
func (m *Movement) Validate(ctx context.Context) error {
	if id.IsNil(m.IngredientID) {
		return apperror.NewValidation("movement requires an ingredient").
			WithDetail("field", "ingredientId")
	}
	if m.Direction != DirectionIn && m.Direction != DirectionOut {
		return apperror.NewValidation("invalid movement direction").
			WithDetail("field", "direction").
			WithDetail("value", string(m.Direction))
	}
	if m.Quantity <= 0 {
		return apperror.NewValidation("movement quantity must be positive").
			WithDetail("field", "quantity")
	}
	return nil
}

// NewMovement creates a movement with a fresh line ID.
func NewMovement(ingredientID id.ID, direction Direction, quantity float64, reason string) Movement {
	return Movement{
		LineID:       id.New(),
		IngredientID: ingredientID,
		Direction:    direction,
		Quantity:     quantity,
		Reason:       reason,
		CreatedAt:    time.Now().UTC(),
	}
}
