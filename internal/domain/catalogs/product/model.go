// Package product provides the Product catalog.
// A product is a sellable item with a recipe: an ordered list of
// ingredient lines with quantities, plus labor parameters used by
// costing.
package product

import (
	"context"

	"fornada/internal/core/apperror"
	"fornada/internal/core/entity"
	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain/measure"
)

// RecipeIngredient is one line of a product recipe.
//
// A line may be virtual: IngredientID is nil and only the free-typed
// Name identifies it. Virtual lines participate in costing but are
// invisible to stock checks until resolved to a catalog ingredient.
type RecipeIngredient struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// IngredientID links to the ingredient catalog. Nil for virtual lines.
	IngredientID *id.ID `db:"ingredient_id" json:"ingredientId,omitempty"`

	// Name is the display name, kept even for linked lines
	Name string `db:"name" json:"name"`

	// BaseUnit of the underlying ingredient
	BaseUnit measure.Unit `db:"base_unit" json:"baseUnit"`

	// UnitCost is the cost per base unit used by costing
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	// Quantity consumed per unit produced, in base units
	Quantity float64 `db:"quantity" json:"quantity"`

	// DisplayUnit and DisplayQuantity are what the author typed.
	// They stay in sync with Quantity through unit conversion.
	DisplayUnit     measure.Unit `db:"display_unit" json:"displayUnit"`
	DisplayQuantity float64      `db:"display_quantity" json:"displayQuantity"`

	// Package conversion parameters copied from the ingredient
	PackageSize *float64      `db:"package_size" json:"packageSize,omitempty"`
	PackageUnit *measure.Unit `db:"package_unit" json:"packageUnit,omitempty"`
}

// IsVirtual reports whether the line is not yet linked to a catalog
// ingredient.
func (l *RecipeIngredient) IsVirtual() bool {
	return l.IngredientID == nil
}

func (l *RecipeIngredient) packageSpec() measure.PackageSpec {
	spec := measure.PackageSpec{}
	if l.PackageSize != nil {
		spec.Size = *l.PackageSize
	}
	if l.PackageUnit != nil {
		spec.Unit = *l.PackageUnit
	} else {
		spec.Unit = l.BaseUnit
	}
	return spec
}

// SetDisplayQuantity records what the author typed and recomputes the
// base quantity from it.
func (l *RecipeIngredient) SetDisplayQuantity(qty float64, unit measure.Unit) {
	l.DisplayQuantity = qty
	l.DisplayUnit = unit
	l.Quantity = measure.Convert(qty, unit, l.BaseUnit, l.packageSpec())
}

// SetQuantity sets the base quantity and recomputes the display value
// in the current display unit.
func (l *RecipeIngredient) SetQuantity(qty float64) {
	l.Quantity = qty
	if l.DisplayUnit == "" {
		l.DisplayUnit = l.BaseUnit
	}
	l.DisplayQuantity = measure.Convert(qty, l.BaseUnit, l.DisplayUnit, l.packageSpec())
}

// LineCost is the line's contribution to a single produced unit.
func (l *RecipeIngredient) LineCost() types.Money {
	return l.UnitCost.Mul(types.NewMoney(l.Quantity))
}

// DisplayUnitCost converts the per-base-unit cost into the display
// unit, so DisplayQuantity times DisplayUnitCost equals LineCost.
func (l *RecipeIngredient) DisplayUnitCost() types.Money {
	unit := l.DisplayUnit
	if unit == "" {
		unit = l.BaseUnit
	}
	factor := measure.Convert(1, unit, l.BaseUnit, l.packageSpec())
	return l.UnitCost.Mul(types.NewMoney(factor))
}

// Product represents a sellable item with its recipe.
type Product struct {
	entity.Catalog

	// SellingPrice is the current price per unit
	SellingPrice types.Money `db:"selling_price" json:"sellingPrice"`

	// PriceOverridden marks a manually set price. When false the price
	// follows the suggested price on recalculation.
	PriceOverridden bool `db:"price_overridden" json:"priceOverridden"`

	// PreparationMinutes is hands-on time per unit produced
	PreparationMinutes float64 `db:"preparation_minutes" json:"preparationMinutes"`

	// HourlyLaborRate values the preparation time
	HourlyLaborRate types.Money `db:"hourly_labor_rate" json:"hourlyLaborRate"`

	// Description is free-form
	Description *string `db:"description" json:"description,omitempty"`

	// Lines is the recipe, ordered by LineNo. Loaded separately from
	// the catalog row.
	Lines []RecipeIngredient `db:"-" json:"lines"`
}

// New creates a Product with required fields.
func New(code, name string) *Product {
	return &Product{
		Catalog:         entity.NewCatalog(code, name),
		SellingPrice:    types.ZeroMoney(),
		HourlyLaborRate: types.ZeroMoney(),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling price cannot be negative").
			WithDetail("field", "sellingPrice")
	}

	if p.PreparationMinutes < 0 {
		return apperror.NewValidation("preparation minutes cannot be negative").
			WithDetail("field", "preparationMinutes")
	}

	if p.HourlyLaborRate.IsNegative() {
		return apperror.NewValidation("hourly labor rate cannot be negative").
			WithDetail("field", "hourlyLaborRate")
	}

	for i := range p.Lines {
		line := &p.Lines[i]
		if line.Name == "" {
			return apperror.NewValidation("recipe line requires a name").
				WithDetail("lineNo", line.LineNo)
		}
		if line.Quantity < 0 {
			return apperror.NewValidation("recipe line quantity cannot be negative").
				WithDetail("lineNo", line.LineNo)
		}
		if line.UnitCost.IsNegative() {
			return apperror.NewValidation("recipe line unit cost cannot be negative").
				WithDetail("lineNo", line.LineNo)
		}
	}

	return nil
}

// AddLine appends a recipe line, assigning LineID and LineNo.
func (p *Product) AddLine(line RecipeIngredient) {
	if id.IsNil(line.LineID) {
		line.LineID = id.New()
	}
	line.LineNo = len(p.Lines) + 1
	p.Lines = append(p.Lines, line)
}

// LinkedLines returns recipe lines that reference catalog ingredients.
// Virtual lines are skipped.
func (p *Product) LinkedLines() []RecipeIngredient {
	out := make([]RecipeIngredient, 0, len(p.Lines))
	for _, l := range p.Lines {
		if !l.IsVirtual() {
			out = append(out, l)
		}
	}
	return out
}
