package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/measure"
)

func TestAggregateRequirements_SumsAcrossLines(t *testing.T) {
	flourID, eggsID := id.New(), id.New()

	cake := product.New("PRD-001", "Carrot cake")
	cake.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 500})
	cake.AddLine(product.RecipeIngredient{Name: "eggs", IngredientID: &eggsID, BaseUnit: measure.Count, Quantity: 3})

	bread := product.New("PRD-002", "Bread")
	bread.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 400})

	order := New(id.New())
	order.AddLine(cake.ID, 2, types.ZeroMoney(), types.ZeroMoney())
	order.AddLine(bread.ID, 3, types.ZeroMoney(), types.ZeroMoney())

	reqs := AggregateRequirements(order.Lines, map[id.ID]*product.Product{
		cake.ID:  cake,
		bread.ID: bread,
	})

	// Sorted by name: eggs, flour.
	require.Len(t, reqs, 2)
	assert.Equal(t, "eggs", reqs[0].Name)
	assert.InDelta(t, 6, reqs[0].Quantity, 1e-9)

	// Flour is additive across products: 2*500 + 3*400.
	assert.Equal(t, "flour", reqs[1].Name)
	assert.InDelta(t, 2200, reqs[1].Quantity, 1e-9)
	assert.Equal(t, measure.Gram, reqs[1].Unit)
}

func TestAggregateRequirements_AdditiveOverLines(t *testing.T) {
	flourID, eggsID := id.New(), id.New()

	cake := product.New("PRD-001", "Carrot cake")
	cake.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 500})
	cake.AddLine(product.RecipeIngredient{Name: "eggs", IngredientID: &eggsID, BaseUnit: measure.Count, Quantity: 3})

	bread := product.New("PRD-002", "Bread")
	bread.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 400})

	catalog := map[id.ID]*product.Product{cake.ID: cake, bread.ID: bread}

	onlyCake := New(id.New())
	onlyCake.AddLine(cake.ID, 2, types.ZeroMoney(), types.ZeroMoney())

	onlyBread := New(id.New())
	onlyBread.AddLine(bread.ID, 3, types.ZeroMoney(), types.ZeroMoney())

	combined := New(id.New())
	combined.AddLine(cake.ID, 2, types.ZeroMoney(), types.ZeroMoney())
	combined.AddLine(bread.ID, 3, types.ZeroMoney(), types.ZeroMoney())

	sum := map[id.ID]float64{}
	for _, order := range []*Order{onlyCake, onlyBread} {
		for _, r := range AggregateRequirements(order.Lines, catalog) {
			sum[r.IngredientID] += r.Quantity
		}
	}

	// Aggregating line by line and summing must match aggregating the
	// combined order in one go.
	together := AggregateRequirements(combined.Lines, catalog)
	require.Len(t, together, len(sum))
	for _, r := range together {
		assert.InDelta(t, sum[r.IngredientID], r.Quantity, 1e-9, "ingredient %s", r.Name)
	}
}

func TestAggregateRequirements_SkipsVirtualLines(t *testing.T) {
	flourID := id.New()

	cake := product.New("PRD-003", "Secret cake")
	cake.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 500})
	cake.AddLine(product.RecipeIngredient{Name: "secret spice", BaseUnit: measure.Gram, Quantity: 10})

	order := New(id.New())
	order.AddLine(cake.ID, 1, types.ZeroMoney(), types.ZeroMoney())

	reqs := AggregateRequirements(order.Lines, map[id.ID]*product.Product{cake.ID: cake})
	require.Len(t, reqs, 1)
	assert.Equal(t, "flour", reqs[0].Name)
}

func TestAggregateRequirements_UnknownProductIgnored(t *testing.T) {
	order := New(id.New())
	order.AddLine(id.New(), 1, types.ZeroMoney(), types.ZeroMoney())

	reqs := AggregateRequirements(order.Lines, map[id.ID]*product.Product{})
	assert.Empty(t, reqs)
}

func TestOrder_Totals(t *testing.T) {
	order := New(id.New())
	order.AddLine(id.New(), 2, types.MustMoney("50"), types.MustMoney("20"))
	order.AddLine(id.New(), 1, types.MustMoney("30"), types.MustMoney("12"))

	assert.True(t, order.TotalAmount.Equal(types.MustMoney("130")), "amount = %s", order.TotalAmount)
	assert.True(t, order.TotalCost.Equal(types.MustMoney("52")), "cost = %s", order.TotalCost)
	// (130 - 52) / 130 = 60%
	assert.True(t, order.Margin().Equal(types.MustMoney("60")), "margin = %s", order.Margin())
}
