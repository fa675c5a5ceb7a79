package product

import (
	"context"

	"fornada/internal/core/id"
	"fornada/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetLines loads the recipe lines for a product, ordered by LineNo.
	GetLines(ctx context.Context, productID id.ID) ([]RecipeIngredient, error)

	// SaveLines replaces the recipe lines for a product.
	SaveLines(ctx context.Context, productID id.ID, lines []RecipeIngredient) error
}
