package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fornada/internal/core/id"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/infrastructure/storage/postgres"
)

const (
	productTable    = "products"
	recipeLineTable = "product_recipe_lines"
)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
	txManager *postgres.TxManager
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
		txManager: txManager,
	}
}

// GetLines loads the recipe lines for a product, ordered by LineNo.
func (r *ProductRepo) GetLines(ctx context.Context, productID id.ID) ([]product.RecipeIngredient, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[product.RecipeIngredient]()...).
		From(recipeLineTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []product.RecipeIngredient
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get recipe lines: %w", err)
	}
	return lines, nil
}

// SaveLines replaces the recipe lines for a product.
// Delete plus insert in one transaction: line sets are small and the
// replace keeps LineNo renumbering trivial.
func (r *ProductRepo) SaveLines(ctx context.Context, productID id.ID, lines []product.RecipeIngredient) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.Querier(ctx)

		delQ := r.Builder().
			Delete(recipeLineTable).
			Where(squirrel.Eq{"product_id": productID})

		sql, args, err := delQ.ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("delete recipe lines: %w", err)
		}

		if len(lines) == 0 {
			return nil
		}

		ins := r.Builder().
			Insert(recipeLineTable).
			Columns("line_id", "product_id", "line_no", "ingredient_id", "name",
				"base_unit", "unit_cost", "quantity", "display_unit", "display_quantity",
				"package_size", "package_unit")

		for _, l := range lines {
			ins = ins.Values(l.LineID, productID, l.LineNo, l.IngredientID, l.Name,
				l.BaseUnit, l.UnitCost, l.Quantity, l.DisplayUnit, l.DisplayQuantity,
				l.PackageSize, l.PackageUnit)
		}

		sql, args, err = ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert recipe lines: %w", err)
		}
		return nil
	})
}
