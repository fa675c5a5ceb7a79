package orders

import (
	"sort"

	"fornada/internal/core/id"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/measure"
)

// Requirement is the total quantity of one ingredient an order needs,
// in the ingredient's base unit.
type Requirement struct {
	IngredientID id.ID        `json:"ingredientId"`
	Name         string       `json:"name"`
	Unit         measure.Unit `json:"unit"`
	Quantity     float64      `json:"quantity"`
}

// AggregateRequirements folds all order lines into per-ingredient
// totals. Virtual recipe lines have no catalog identity and are
// skipped: stock checks only ever see resolved ingredients.
//
// The result is sorted by name for stable output.
func AggregateRequirements(lines []OrderLine, productsByID map[id.ID]*product.Product) []Requirement {
	byIngredient := make(map[id.ID]*Requirement)

	for _, line := range lines {
		p, ok := productsByID[line.ProductID]
		if !ok {
			continue
		}
		for i := range p.Lines {
			rl := &p.Lines[i]
			if rl.IsVirtual() || rl.Quantity <= 0 {
				continue
			}

			need := rl.Quantity * line.Quantity
			if req, ok := byIngredient[*rl.IngredientID]; ok {
				req.Quantity += need
			} else {
				byIngredient[*rl.IngredientID] = &Requirement{
					IngredientID: *rl.IngredientID,
					Name:         rl.Name,
					Unit:         rl.BaseUnit,
					Quantity:     need,
				}
			}
		}
	}

	out := make([]Requirement, 0, len(byIngredient))
	for _, req := range byIngredient {
		out = append(out, *req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
