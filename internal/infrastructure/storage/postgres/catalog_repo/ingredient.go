package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"fornada/internal/core/apperror"
	"fornada/internal/domain"
	"fornada/internal/domain/catalogs/ingredient"
	"fornada/internal/infrastructure/storage/postgres"
)

const ingredientTable = "ingredients"

// IngredientRepo implements ingredient.Repository.
type IngredientRepo struct {
	*BaseCatalogRepo[*ingredient.Ingredient]
}

// NewIngredientRepo creates a new ingredient repository.
func NewIngredientRepo(txManager *postgres.TxManager) *IngredientRepo {
	return &IngredientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			ingredientTable,
			postgres.ExtractDBColumns[ingredient.Ingredient](),
			func() *ingredient.Ingredient { return &ingredient.Ingredient{} },
		),
	}
}

// FindByName retrieves an ingredient by exact name, case-insensitively.
// Trailing whitespace in the stored or requested name does not match:
// the comparison is exact apart from case.
func (r *IngredientRepo) FindByName(ctx context.Context, name string) (*ingredient.Ingredient, error) {
	q := r.baseSelect().
		Where(squirrel.Expr("LOWER(name) = LOWER(?)", name)).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("ingredient", strings.TrimSpace(name))
		}
		return nil, err
	}
	return item, nil
}

// FindLowStock retrieves ingredients with stock at or below minimum.
func (r *IngredientRepo) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*ingredient.Ingredient], error) {
	result := domain.ListResult[*ingredient.Ingredient]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Expr("min_stock > 0 AND stock_quantity <= min_stock")).
		OrderBy("name ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	items, err := r.FindMany(ctx, q)
	if err != nil {
		return result, fmt.Errorf("find low stock: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}
