package costing

import (
	"math"

	"fornada/internal/core/id"
	"fornada/internal/domain/catalogs/product"
)

// Producible is how many units of a product current stock supports.
type Producible struct {
	// Units is the limiting count. Meaningless when Unbounded is true.
	Units int64 `json:"units"`

	// Unbounded marks a product whose recipe places no constraint on
	// production (no recipe lines at all).
	Unbounded bool `json:"unbounded"`
}

// ProducibleUnits estimates how many units can be produced from the
// given stock levels, keyed by ingredient ID in base units.
//
// A product with no recipe lines is unconstrained. A product whose
// lines are all virtual is the opposite: nothing is verifiable against
// stock, so the answer is zero. Negative stock clamps to zero rather
// than reporting negative units.
func ProducibleUnits(p *product.Product, stock map[id.ID]float64) Producible {
	if len(p.Lines) == 0 {
		return Producible{Unbounded: true}
	}

	limit := int64(math.MaxInt64)
	constrained := false

	for i := range p.Lines {
		line := &p.Lines[i]
		if line.IsVirtual() || line.Quantity <= 0 {
			continue
		}
		constrained = true

		available := stock[*line.IngredientID]
		units := int64(math.Floor(available / line.Quantity))
		if units < limit {
			limit = units
		}
	}

	if !constrained {
		return Producible{Units: 0}
	}
	if limit < 0 {
		limit = 0
	}
	return Producible{Units: limit}
}
