package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/costing"
	"fornada/internal/domain/measure"
)

type fakeProducts struct {
	items []*product.Product
}

func (f *fakeProducts) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{
		Items:      f.items,
		TotalCount: int64(len(f.items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

func (f *fakeProducts) GetWithLines(ctx context.Context, productID id.ID) (*product.Product, error) {
	for _, p := range f.items {
		if p.ID == productID {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

type fakeLevels struct {
	levels   map[id.ID]float64
	fail     bool
	lastRead []id.ID
}

func (f *fakeLevels) FreshLevels(ctx context.Context, ids []id.ID) (map[id.ID]float64, error) {
	if f.fail {
		return nil, errors.New("database unavailable")
	}
	f.lastRead = ids
	out := make(map[id.ID]float64, len(ids))
	for _, ingID := range ids {
		out[ingID] = f.levels[ingID]
	}
	return out, nil
}

func TestCatalogCosting(t *testing.T) {
	ctx := context.Background()
	flourID := id.New()

	cake := product.New("PRD-001", "Carrot cake")
	cake.SellingPrice = types.MustMoney("50")
	cake.AddLine(product.RecipeIngredient{
		Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram,
		UnitCost: types.MustMoney("0.01"), Quantity: 500,
	})

	bread := product.New("PRD-002", "Sourdough")
	bread.AddLine(product.RecipeIngredient{
		Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram,
		UnitCost: types.MustMoney("0.01"), Quantity: 800,
	})

	svc := NewService(
		&fakeProducts{items: []*product.Product{cake, bread}},
		&fakeLevels{levels: map[id.ID]float64{flourID: 1600}},
		costing.NewCalculator(costing.DefaultConfig()),
	)

	report, err := svc.CatalogCosting(ctx, CatalogCostingFilter{})
	require.NoError(t, err)
	require.Len(t, report.Items, 2)
	assert.EqualValues(t, 2, report.TotalItems)

	// Shared ingredient is read once, against the same snapshot.
	assert.Equal(t, "Carrot cake", report.Items[0].Name)
	assert.True(t, report.Items[0].Costing.IngredientsCost.Equal(types.MustMoney("5")),
		"ingredients cost = %s", report.Items[0].Costing.IngredientsCost)
	assert.EqualValues(t, 3, report.Items[0].Producible.Units)
	assert.EqualValues(t, 2, report.Items[1].Producible.Units)
}

func TestCatalogCosting_EmptyRecipeIsUnbounded(t *testing.T) {
	ctx := context.Background()

	sample := product.New("PRD-003", "Tasting box")
	svc := NewService(
		&fakeProducts{items: []*product.Product{sample}},
		&fakeLevels{},
		costing.NewCalculator(costing.DefaultConfig()),
	)

	report, err := svc.CatalogCosting(ctx, CatalogCostingFilter{})
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.True(t, report.Items[0].Producible.Unbounded)
}

func TestCatalogCosting_StockReadFailure(t *testing.T) {
	ctx := context.Background()
	flourID := id.New()

	cake := product.New("PRD-001", "Carrot cake")
	cake.AddLine(product.RecipeIngredient{
		Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram,
		UnitCost: types.MustMoney("0.01"), Quantity: 500,
	})

	svc := NewService(
		&fakeProducts{items: []*product.Product{cake}},
		&fakeLevels{fail: true},
		costing.NewCalculator(costing.DefaultConfig()),
	)

	_, err := svc.CatalogCosting(ctx, CatalogCostingFilter{})
	assert.Error(t, err)
}
