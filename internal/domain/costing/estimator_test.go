package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fornada/internal/core/id"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/measure"
)

func TestProducibleUnits_EmptyRecipeIsUnbounded(t *testing.T) {
	p := product.New("PRD-001", "Mystery box")

	got := ProducibleUnits(p, nil)
	assert.True(t, got.Unbounded)
}

func TestProducibleUnits_AllVirtualIsZero(t *testing.T) {
	p := product.New("PRD-002", "Sketchpad cake")
	p.AddLine(product.RecipeIngredient{Name: "something", BaseUnit: measure.Gram, Quantity: 100})
	p.AddLine(product.RecipeIngredient{Name: "something else", BaseUnit: measure.Count, Quantity: 2})

	got := ProducibleUnits(p, nil)
	assert.False(t, got.Unbounded)
	assert.Equal(t, int64(0), got.Units)
}

func TestProducibleUnits_MinOfFloors(t *testing.T) {
	flourID, eggsID := id.New(), id.New()

	p := product.New("PRD-003", "Carrot cake")
	p.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 500})
	p.AddLine(product.RecipeIngredient{Name: "eggs", IngredientID: &eggsID, BaseUnit: measure.Count, Quantity: 3})

	stock := map[id.ID]float64{
		flourID: 2600, // 5 cakes worth of flour
		eggsID:  10,   // 3 cakes worth of eggs
	}

	got := ProducibleUnits(p, stock)
	assert.False(t, got.Unbounded)
	assert.Equal(t, int64(3), got.Units)
}

func TestProducibleUnits_VirtualLinesDoNotConstrain(t *testing.T) {
	flourID := id.New()

	p := product.New("PRD-004", "Bread")
	p.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 400})
	p.AddLine(product.RecipeIngredient{Name: "secret spice", BaseUnit: measure.Gram, Quantity: 5})

	got := ProducibleUnits(p, map[id.ID]float64{flourID: 1200})
	assert.Equal(t, int64(3), got.Units)
}

func TestProducibleUnits_MissingStockIsZero(t *testing.T) {
	flourID := id.New()

	p := product.New("PRD-005", "Bread")
	p.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 400})

	got := ProducibleUnits(p, map[id.ID]float64{})
	assert.Equal(t, int64(0), got.Units)
}

func TestProducibleUnits_NegativeStockClampsToZero(t *testing.T) {
	flourID := id.New()

	p := product.New("PRD-006", "Bread")
	p.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 400})

	// Overselling drove stock negative.
	got := ProducibleUnits(p, map[id.ID]float64{flourID: -800})
	assert.Equal(t, int64(0), got.Units)
}

func TestProducibleUnits_ZeroQuantityLineSkipped(t *testing.T) {
	flourID, saltID := id.New(), id.New()

	p := product.New("PRD-007", "Bread")
	p.AddLine(product.RecipeIngredient{Name: "flour", IngredientID: &flourID, BaseUnit: measure.Gram, Quantity: 400})
	p.AddLine(product.RecipeIngredient{Name: "salt", IngredientID: &saltID, BaseUnit: measure.Gram, Quantity: 0})

	got := ProducibleUnits(p, map[id.ID]float64{flourID: 800})
	assert.Equal(t, int64(2), got.Units)
}
