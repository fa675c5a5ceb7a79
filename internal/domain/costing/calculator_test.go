package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/measure"
)

func cakeProduct() *product.Product {
	p := product.New("PRD-001", "Carrot cake")
	p.PreparationMinutes = 90
	p.HourlyLaborRate = types.MustMoney("20")

	flourID := id.New()
	p.AddLine(product.RecipeIngredient{
		Name:         "flour",
		IngredientID: &flourID,
		BaseUnit:     measure.Gram,
		UnitCost:     types.MustMoney("0.01"),
		Quantity:     500,
	})
	eggsID := id.New()
	p.AddLine(product.RecipeIngredient{
		Name:         "eggs",
		IngredientID: &eggsID,
		BaseUnit:     measure.Count,
		UnitCost:     types.MustMoney("0.50"),
		Quantity:     3,
	})
	return p
}

func TestCalculator_RecipeAndLaborCost(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	p := cakeProduct()

	// 500 * 0.01 + 3 * 0.50 = 6.50
	assert.True(t, calc.RecipeCost(p).Equal(types.MustMoney("6.5")),
		"recipe cost = %s", calc.RecipeCost(p))

	// 90 minutes at 20/h = 30
	assert.True(t, calc.LaborCost(p).Equal(types.MustMoney("30")))

	assert.True(t, calc.TotalCost(p).Equal(types.MustMoney("36.5")))
}

func TestCalculator_SuggestedPrice(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// cost / 0.4
	got := calc.SuggestedPrice(types.MustMoney("36.5"), false, types.ZeroMoney())
	assert.True(t, got.Equal(types.MustMoney("91.25")), "suggested = %s", got)

	// Overridden price wins regardless of cost.
	got = calc.SuggestedPrice(types.MustMoney("36.5"), true, types.MustMoney("120"))
	assert.True(t, got.Equal(types.MustMoney("120")))
}

func TestMarginPercent(t *testing.T) {
	// (100 - 40) / 100 = 60%
	got := MarginPercent(types.MustMoney("100"), types.MustMoney("40"))
	assert.True(t, got.Equal(types.MustMoney("60")), "margin = %s", got)

	// Zero price never divides.
	got = MarginPercent(types.ZeroMoney(), types.MustMoney("40"))
	assert.True(t, got.IsZero())

	// Selling below cost goes negative.
	got = MarginPercent(types.MustMoney("30"), types.MustMoney("45"))
	assert.True(t, got.Equal(types.MustMoney("-50")), "margin = %s", got)
}

func TestSnapshotOr(t *testing.T) {
	frozen := types.MustMoney("12.34")
	assert.True(t, SnapshotOr(&frozen, types.MustMoney("99")).Equal(frozen))
	assert.True(t, SnapshotOr(nil, types.MustMoney("99")).Equal(types.MustMoney("99")))
}

func TestCalculator_Breakdown(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	p := cakeProduct()

	b := calc.Breakdown(p)
	require.Len(t, b.Lines, 2)
	assert.True(t, b.IngredientsCost.Equal(types.MustMoney("6.5")))
	assert.True(t, b.LaborCost.Equal(types.MustMoney("30")))
	assert.True(t, b.TotalCost.Equal(types.MustMoney("36.5")))
	assert.True(t, b.SuggestedPrice.Equal(types.MustMoney("91.25")))
	// Non-overridden product is priced at the suggestion, so margin
	// lands exactly at the target.
	assert.True(t, b.MarginPercent.Equal(types.MustMoney("60")), "margin = %s", b.MarginPercent)
}

func TestCalculator_BreakdownDisplayUnitCost(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	p := product.New("PRD-002", "Sourdough")

	flourID := id.New()
	line := product.RecipeIngredient{
		Name:         "flour",
		IngredientID: &flourID,
		BaseUnit:     measure.Gram,
		UnitCost:     types.MustMoney("0.01"),
	}
	line.SetDisplayQuantity(1, measure.Kilogram)
	p.AddLine(line)

	b := calc.Breakdown(p)
	require.Len(t, b.Lines, 1)
	got := b.Lines[0]

	assert.Equal(t, 1.0, got.Quantity)
	assert.Equal(t, measure.Kilogram, got.Unit)
	// 0.01 per gram is 10 per kilogram.
	assert.True(t, got.UnitCost.Equal(types.MustMoney("10")), "unit cost = %s", got.UnitCost)
	assert.True(t, got.Total.Equal(types.MustMoney("10")))
	// Quantity, unit cost and total stay mutually consistent.
	assert.True(t, got.UnitCost.Mul(types.NewMoney(got.Quantity)).Equal(got.Total))
}

func TestCalculator_LaborCostDefaultRate(t *testing.T) {
	calc := NewCalculator(Config{
		TargetCostRatio:        0.4,
		DefaultHourlyLaborRate: types.MustMoney("18"),
	})

	// No rate on the product, so the configured default applies.
	p := product.New("PRD-003", "Baguette")
	p.PreparationMinutes = 90
	assert.True(t, calc.LaborCost(p).Equal(types.MustMoney("27")),
		"labor cost = %s", calc.LaborCost(p))

	// A product's own rate always wins over the default.
	p.HourlyLaborRate = types.MustMoney("20")
	assert.True(t, calc.LaborCost(p).Equal(types.MustMoney("30")))
}

func TestCalculator_BreakdownOverriddenPrice(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	p := cakeProduct()
	p.PriceOverridden = true
	p.SellingPrice = types.MustMoney("50")

	b := calc.Breakdown(p)
	assert.True(t, b.CurrentPrice.Equal(types.MustMoney("50")))
	assert.True(t, b.SuggestedPrice.Equal(types.MustMoney("50")))
	// (50 - 36.5) / 50 = 27%
	assert.True(t, b.MarginPercent.Equal(types.MustMoney("27")), "margin = %s", b.MarginPercent)
}
