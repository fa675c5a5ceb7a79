package stock

import (
	"context"
	"time"

	"fornada/internal/core/id"
)

// MovementFilter for filtering movement history.
type MovementFilter struct {
	Direction *Direction
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	Offset    int
}

// Repository defines operations for the stock register.
type Repository interface {
	// Apply inserts movements and adjusts ingredient balances in the
	// same transaction.
	Apply(ctx context.Context, movements []Movement) error

	// History returns movements for an ingredient, newest first.
	History(ctx context.Context, ingredientID id.ID, filter MovementFilter) ([]Movement, error)

	// FreshLevels reads current stock for the given ingredients
	// directly from storage, bypassing any cached entity state.
	FreshLevels(ctx context.Context, ingredientIDs []id.ID) (map[id.ID]float64, error)
}
