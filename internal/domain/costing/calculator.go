package costing

import (
	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/measure"

	"github.com/shopspring/decimal"
)

// Calculator computes recipe costs and pricing.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator with the given pricing parameters.
func NewCalculator(cfg Config) *Calculator {
	if cfg.TargetCostRatio <= 0 || cfg.TargetCostRatio >= 1 {
		cfg.TargetCostRatio = DefaultConfig().TargetCostRatio
	}
	return &Calculator{cfg: cfg}
}

// RecipeCost sums ingredient costs per unit produced. Virtual lines
// contribute through their stored unit cost like any other line.
func (c *Calculator) RecipeCost(p *product.Product) types.Money {
	total := types.ZeroMoney()
	for i := range p.Lines {
		total = total.Add(p.Lines[i].LineCost())
	}
	return total
}

// LaborCost values preparation time at the product's hourly rate,
// falling back to the configured default when the product sets none.
func (c *Calculator) LaborCost(p *product.Product) types.Money {
	rate := p.HourlyLaborRate
	if rate.IsZero() {
		rate = c.cfg.DefaultHourlyLaborRate
	}
	return types.MoneyFromMinutes(p.PreparationMinutes, rate)
}

// TotalCost is ingredients plus labor per unit produced.
func (c *Calculator) TotalCost(p *product.Product) types.Money {
	return c.RecipeCost(p).Add(c.LaborCost(p))
}

// SuggestedPrice derives a selling price from total cost so that cost
// lands at the target ratio of the price. A manually overridden price
// is kept as is.
func (c *Calculator) SuggestedPrice(totalCost types.Money, overridden bool, current types.Money) types.Money {
	if overridden {
		return current
	}
	return totalCost.Div(decimal.NewFromFloat(c.cfg.TargetCostRatio)).Round(2)
}

// MarginPercent returns the margin as a percentage of the selling
// price. A zero price yields zero, never a division error.
func MarginPercent(price, cost types.Money) types.Money {
	if price.IsZero() {
		return types.ZeroMoney()
	}
	return price.Sub(cost).Div(price).Mul(decimal.NewFromInt(100)).Round(2)
}

// SnapshotOr prefers a frozen cost snapshot over the current value.
// Order lines freeze cost at submission; everything else is live.
func SnapshotOr(snapshot *types.Money, current types.Money) types.Money {
	if snapshot != nil {
		return *snapshot
	}
	return current
}

// LineCost is one ingredient's contribution in a cost breakdown.
type LineCost struct {
	LineID       id.ID        `json:"lineId"`
	IngredientID *id.ID       `json:"ingredientId,omitempty"`
	Name         string       `json:"name"`
	Quantity     float64      `json:"quantity"`
	Unit         measure.Unit `json:"unit"`
	UnitCost     types.Money  `json:"unitCost"`
	Total        types.Money  `json:"total"`
}

// Breakdown is the full costing picture for one product.
type Breakdown struct {
	Lines           []LineCost  `json:"lines"`
	IngredientsCost types.Money `json:"ingredientsCost"`
	LaborCost       types.Money `json:"laborCost"`
	TotalCost       types.Money `json:"totalCost"`
	SuggestedPrice  types.Money `json:"suggestedPrice"`
	CurrentPrice    types.Money `json:"currentPrice"`
	MarginPercent   types.Money `json:"marginPercent"`
}

// Breakdown computes the complete costing picture for a product.
func (c *Calculator) Breakdown(p *product.Product) Breakdown {
	lines := make([]LineCost, 0, len(p.Lines))
	ingredients := types.ZeroMoney()

	for i := range p.Lines {
		l := &p.Lines[i]
		cost := l.LineCost()
		ingredients = ingredients.Add(cost)
		lines = append(lines, LineCost{
			LineID:       l.LineID,
			IngredientID: l.IngredientID,
			Name:         l.Name,
			Quantity:     l.DisplayQuantity,
			Unit:         l.DisplayUnit,
			UnitCost:     l.DisplayUnitCost(),
			Total:        cost,
		})
	}

	labor := c.LaborCost(p)
	total := ingredients.Add(labor)
	suggested := c.SuggestedPrice(total, p.PriceOverridden, p.SellingPrice)

	price := p.SellingPrice
	if !p.PriceOverridden {
		price = suggested
	}

	return Breakdown{
		Lines:           lines,
		IngredientsCost: ingredients,
		LaborCost:       labor,
		TotalCost:       total,
		SuggestedPrice:  suggested,
		CurrentPrice:    price,
		MarginPercent:   MarginPercent(price, total),
	}
}
