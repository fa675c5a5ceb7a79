package ingredient

import (
	"context"

	"fornada/internal/core/id"
	"fornada/internal/domain"
)

// Repository defines the interface for Ingredient persistence.
type Repository interface {
	domain.CatalogRepository[*Ingredient]

	// FindByName retrieves an ingredient by exact name, case-insensitively.
	FindByName(ctx context.Context, name string) (*Ingredient, error)

	// GetForUpdate retrieves an ingredient with a row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Ingredient, error)

	// FindLowStock retrieves ingredients with stock at or below minimum.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Ingredient], error)
}
