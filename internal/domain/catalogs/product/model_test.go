package product

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain/measure"
)

func TestRecipeIngredient_DisplaySync(t *testing.T) {
	line := RecipeIngredient{
		Name:     "flour",
		BaseUnit: measure.Gram,
	}

	// Author types 1.5 kg; base quantity follows.
	line.SetDisplayQuantity(1.5, measure.Kilogram)
	assert.InDelta(t, 1500, line.Quantity, 1e-9)
	assert.Equal(t, measure.Kilogram, line.DisplayUnit)

	// Setting base quantity recomputes the display value.
	line.SetQuantity(2250)
	assert.InDelta(t, 2.25, line.DisplayQuantity, 1e-9)
}

func TestRecipeIngredient_PackageDisplay(t *testing.T) {
	size := 500.0
	unit := measure.Gram
	line := RecipeIngredient{
		Name:        "butter",
		BaseUnit:    measure.Gram,
		PackageSize: &size,
		PackageUnit: &unit,
	}

	// 2 packages of 500 g
	line.SetDisplayQuantity(2, measure.Package)
	assert.InDelta(t, 1000, line.Quantity, 1e-9)

	line.SetQuantity(1500)
	assert.InDelta(t, 3, line.DisplayQuantity, 1e-9)
}

func TestRecipeIngredient_LineCost(t *testing.T) {
	line := RecipeIngredient{
		UnitCost: types.MustMoney("0.05"),
		Quantity: 300,
	}
	assert.True(t, line.LineCost().Equal(types.MustMoney("15")))
}

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	p := New("PRD-001", "Carrot cake")
	require.NoError(t, p.Validate(ctx))

	p.SellingPrice = types.MustMoney("-1")
	assert.Error(t, p.Validate(ctx))

	p.SellingPrice = types.ZeroMoney()
	p.PreparationMinutes = -5
	assert.Error(t, p.Validate(ctx))

	p.PreparationMinutes = 0
	p.AddLine(RecipeIngredient{Name: "", BaseUnit: measure.Gram})
	assert.Error(t, p.Validate(ctx))
}

func TestProduct_AddLineAndLinkedLines(t *testing.T) {
	p := New("PRD-002", "Brigadeiro box")

	ingID := id.New()
	p.AddLine(RecipeIngredient{Name: "condensed milk", IngredientID: &ingID, BaseUnit: measure.Milliliter})
	p.AddLine(RecipeIngredient{Name: "sprinkles", BaseUnit: measure.Gram})

	require.Len(t, p.Lines, 2)
	assert.Equal(t, 1, p.Lines[0].LineNo)
	assert.Equal(t, 2, p.Lines[1].LineNo)
	assert.False(t, id.IsNil(p.Lines[0].LineID))

	linked := p.LinkedLines()
	require.Len(t, linked, 1)
	assert.Equal(t, "condensed milk", linked[0].Name)
	assert.True(t, p.Lines[1].IsVirtual())
}

func TestRecipeIngredient_NegativeDisplayStaysFinite(t *testing.T) {
	line := RecipeIngredient{Name: "salt", BaseUnit: measure.Gram}
	line.SetDisplayQuantity(-10, measure.Gram)
	assert.False(t, math.IsNaN(line.Quantity))
	assert.Equal(t, -10.0, line.Quantity)
}
