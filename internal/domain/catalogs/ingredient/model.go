// Package ingredient provides the Ingredient catalog.
// Ingredients are raw materials consumed by product recipes and tracked
// against on-hand stock.
package ingredient

import (
	"context"

	"fornada/internal/core/apperror"
	"fornada/internal/core/entity"
	"fornada/internal/core/types"
	"fornada/internal/domain/measure"
)

// Ingredient represents a purchasable raw material.
type Ingredient struct {
	entity.Catalog

	// BaseUnit is the unit all stock and recipe quantities resolve to.
	// Must be one of the base units; the package pseudo-unit is a
	// purchase-side convenience, never a base unit.
	BaseUnit measure.Unit `db:"base_unit" json:"baseUnit"`

	// CostPerUnit is the purchase cost per base unit
	CostPerUnit types.Money `db:"cost_per_unit" json:"costPerUnit"`

	// StockQuantity is the current on-hand quantity in base units
	StockQuantity float64 `db:"stock_quantity" json:"stockQuantity"`

	// MinStock is the reorder threshold in base units
	MinStock float64 `db:"min_stock" json:"minStock"`

	// PackageSize is how much of the base unit one purchase package
	// holds. Nil when the ingredient is not bought in packages.
	PackageSize *float64 `db:"package_size" json:"packageSize,omitempty"`

	// PackageUnit is the unit PackageSize is expressed in
	PackageUnit *measure.Unit `db:"package_unit" json:"packageUnit,omitempty"`

	// SupplierNote is free-form purchasing info
	SupplierNote *string `db:"supplier_note" json:"supplierNote,omitempty"`
}

// New creates an Ingredient with required fields.
func New(code, name string, baseUnit measure.Unit) *Ingredient {
	return &Ingredient{
		Catalog:     entity.NewCatalog(code, name),
		BaseUnit:    baseUnit,
		CostPerUnit: types.ZeroMoney(),
	}
}

// Validate implements entity.Validatable interface.
func (i *Ingredient) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !i.BaseUnit.ValidBase() {
		return apperror.NewValidation("invalid base unit").
			WithDetail("field", "baseUnit").
			WithDetail("value", string(i.BaseUnit))
	}

	if i.CostPerUnit.IsNegative() {
		return apperror.NewValidation("cost per unit cannot be negative").
			WithDetail("field", "costPerUnit")
	}

	if i.MinStock < 0 {
		return apperror.NewValidation("minimum stock cannot be negative").
			WithDetail("field", "minStock")
	}

	if i.PackageSize != nil && *i.PackageSize <= 0 {
		return apperror.NewValidation("package size must be positive").
			WithDetail("field", "packageSize")
	}

	if i.PackageUnit != nil && !i.PackageUnit.ValidBase() {
		return apperror.NewValidation("invalid package unit").
			WithDetail("field", "packageUnit").
			WithDetail("value", string(*i.PackageUnit))
	}

	return nil
}

// PackageSpec returns the conversion spec for the ingredient's purchase
// package. Zero spec when the ingredient has no package defined.
func (i *Ingredient) PackageSpec() measure.PackageSpec {
	spec := measure.PackageSpec{}
	if i.PackageSize != nil {
		spec.Size = *i.PackageSize
	}
	if i.PackageUnit != nil {
		spec.Unit = *i.PackageUnit
	} else {
		spec.Unit = i.BaseUnit
	}
	return spec
}

// IsLowStock returns true when on-hand quantity is at or below the
// reorder threshold.
func (i *Ingredient) IsLowStock() bool {
	return i.MinStock > 0 && i.StockQuantity <= i.MinStock
}
