package dto

import (
	"fornada/internal/core/types"
	"fornada/internal/domain/catalogs/ingredient"
	"fornada/internal/domain/measure"
)

// --- Request DTOs ---

// CreateIngredientRequest is the request body for creating an ingredient.
type CreateIngredientRequest struct {
	Code         string        `json:"code"`
	Name         string        `json:"name" binding:"required"`
	BaseUnit     measure.Unit  `json:"baseUnit" binding:"required"`
	CostPerUnit  types.Money   `json:"costPerUnit"`
	MinStock     float64       `json:"minStock"`
	PackageSize  *float64      `json:"packageSize"`
	PackageUnit  *measure.Unit `json:"packageUnit"`
	SupplierNote *string       `json:"supplierNote"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateIngredientRequest) ToEntity() *ingredient.Ingredient {
	ing := ingredient.New(r.Code, r.Name, r.BaseUnit)
	ing.CostPerUnit = r.CostPerUnit
	ing.MinStock = r.MinStock
	ing.PackageSize = r.PackageSize
	ing.PackageUnit = r.PackageUnit
	ing.SupplierNote = r.SupplierNote
	return ing
}

// UpdateIngredientRequest is the request body for updating an ingredient.
type UpdateIngredientRequest struct {
	Code         string        `json:"code"`
	Name         string        `json:"name" binding:"required"`
	BaseUnit     measure.Unit  `json:"baseUnit" binding:"required"`
	CostPerUnit  types.Money   `json:"costPerUnit"`
	MinStock     float64       `json:"minStock"`
	PackageSize  *float64      `json:"packageSize"`
	PackageUnit  *measure.Unit `json:"packageUnit"`
	SupplierNote *string       `json:"supplierNote"`
	Version      int           `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
// StockQuantity is deliberately absent: stock changes only through movements.
func (r *UpdateIngredientRequest) ApplyTo(ing *ingredient.Ingredient) {
	ing.Code = r.Code
	ing.Name = r.Name
	ing.BaseUnit = r.BaseUnit
	ing.CostPerUnit = r.CostPerUnit
	ing.MinStock = r.MinStock
	ing.PackageSize = r.PackageSize
	ing.PackageUnit = r.PackageUnit
	ing.SupplierNote = r.SupplierNote
	ing.Version = r.Version
}

// --- Response DTOs ---

// IngredientResponse is the response body for an ingredient.
type IngredientResponse struct {
	BaseResponse
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	BaseUnit      measure.Unit  `json:"baseUnit"`
	CostPerUnit   types.Money   `json:"costPerUnit"`
	StockQuantity float64       `json:"stockQuantity"`
	MinStock      float64       `json:"minStock"`
	LowStock      bool          `json:"lowStock"`
	PackageSize   *float64      `json:"packageSize,omitempty"`
	PackageUnit   *measure.Unit `json:"packageUnit,omitempty"`
	SupplierNote  *string       `json:"supplierNote,omitempty"`
}

// FromIngredient creates response DTO from domain entity.
func FromIngredient(ing *ingredient.Ingredient) *IngredientResponse {
	return &IngredientResponse{
		BaseResponse:  FromBaseCatalog(ing.BaseCatalog),
		Code:          ing.Code,
		Name:          ing.Name,
		BaseUnit:      ing.BaseUnit,
		CostPerUnit:   ing.CostPerUnit,
		StockQuantity: ing.StockQuantity,
		MinStock:      ing.MinStock,
		LowStock:      ing.IsLowStock(),
		PackageSize:   ing.PackageSize,
		PackageUnit:   ing.PackageUnit,
		SupplierNote:  ing.SupplierNote,
	}
}

// ResolveIngredientRequest resolves a free-typed name to a catalog entry.
type ResolveIngredientRequest struct {
	Name     string       `json:"name" binding:"required"`
	BaseUnit measure.Unit `json:"baseUnit"`
}
