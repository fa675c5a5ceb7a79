package dto

import (
	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/costing"
	"fornada/internal/domain/measure"
)

// --- Recipe line DTOs ---

// RecipeLineRequest is one authored recipe line.
// Quantity and Unit are what the author typed; the base quantity is
// recomputed server-side.
type RecipeLineRequest struct {
	IngredientID *string      `json:"ingredientId"`
	Name         string       `json:"name"`
	Quantity     float64      `json:"quantity" binding:"required"`
	Unit         measure.Unit `json:"unit" binding:"required"`
	UnitCost     *types.Money `json:"unitCost"`
}

// ToLine converts the request line to a domain recipe line.
func (r *RecipeLineRequest) ToLine() (product.RecipeIngredient, error) {
	line := product.RecipeIngredient{
		Name:        r.Name,
		DisplayUnit: r.Unit,
	}

	if r.IngredientID != nil && *r.IngredientID != "" {
		ingID, err := id.Parse(*r.IngredientID)
		if err != nil {
			return line, err
		}
		line.IngredientID = &ingID
	} else {
		// Virtual line: the typed unit doubles as the base unit so the
		// quantity stays meaningful until the line is resolved.
		line.BaseUnit = r.Unit
		if !line.BaseUnit.ValidBase() {
			line.BaseUnit = measure.Count
		}
		if r.UnitCost != nil {
			line.UnitCost = *r.UnitCost
		} else {
			line.UnitCost = types.ZeroMoney()
		}
	}

	line.SetDisplayQuantity(r.Quantity, r.Unit)
	return line, nil
}

// RecipeLineResponse is one recipe line in API responses.
type RecipeLineResponse struct {
	LineID          string        `json:"lineId"`
	LineNo          int           `json:"lineNo"`
	IngredientID    *string       `json:"ingredientId,omitempty"`
	Virtual         bool          `json:"virtual"`
	Name            string        `json:"name"`
	BaseUnit        measure.Unit  `json:"baseUnit"`
	Quantity        float64       `json:"quantity"`
	DisplayUnit     measure.Unit  `json:"displayUnit"`
	DisplayQuantity float64       `json:"displayQuantity"`
	UnitCost        types.Money   `json:"unitCost"`
	LineCost        types.Money   `json:"lineCost"`
	PackageSize     *float64      `json:"packageSize,omitempty"`
	PackageUnit     *measure.Unit `json:"packageUnit,omitempty"`
}

// FromRecipeLine creates a response line from a domain line.
func FromRecipeLine(l product.RecipeIngredient) RecipeLineResponse {
	resp := RecipeLineResponse{
		LineID:          l.LineID.String(),
		LineNo:          l.LineNo,
		Virtual:         l.IsVirtual(),
		Name:            l.Name,
		BaseUnit:        l.BaseUnit,
		Quantity:        l.Quantity,
		DisplayUnit:     l.DisplayUnit,
		DisplayQuantity: l.DisplayQuantity,
		UnitCost:        l.UnitCost,
		LineCost:        l.LineCost(),
		PackageSize:     l.PackageSize,
		PackageUnit:     l.PackageUnit,
	}
	if l.IngredientID != nil {
		s := l.IngredientID.String()
		resp.IngredientID = &s
	}
	return resp
}

// --- Product DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code               string              `json:"code"`
	Name               string              `json:"name" binding:"required"`
	SellingPrice       *types.Money        `json:"sellingPrice"`
	PriceOverridden    bool                `json:"priceOverridden"`
	PreparationMinutes float64             `json:"preparationMinutes"`
	HourlyLaborRate    *types.Money        `json:"hourlyLaborRate"`
	Description        *string             `json:"description"`
	Lines              []RecipeLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	p := product.New(r.Code, r.Name)
	if r.SellingPrice != nil {
		p.SellingPrice = *r.SellingPrice
	}
	p.PriceOverridden = r.PriceOverridden
	p.PreparationMinutes = r.PreparationMinutes
	if r.HourlyLaborRate != nil {
		p.HourlyLaborRate = *r.HourlyLaborRate
	}
	p.Description = r.Description

	for i := range r.Lines {
		line, err := r.Lines[i].ToLine()
		if err != nil {
			return nil, err
		}
		p.AddLine(line)
	}
	return p, nil
}

// UpdateProductRequest is the request body for updating a product.
// Lines replace the stored recipe wholesale.
type UpdateProductRequest struct {
	Code               string              `json:"code"`
	Name               string              `json:"name" binding:"required"`
	SellingPrice       *types.Money        `json:"sellingPrice"`
	PriceOverridden    bool                `json:"priceOverridden"`
	PreparationMinutes float64             `json:"preparationMinutes"`
	HourlyLaborRate    *types.Money        `json:"hourlyLaborRate"`
	Description        *string             `json:"description"`
	Lines              []RecipeLineRequest `json:"lines"`
	Version            int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) error {
	p.Code = r.Code
	p.Name = r.Name
	if r.SellingPrice != nil {
		p.SellingPrice = *r.SellingPrice
	}
	p.PriceOverridden = r.PriceOverridden
	p.PreparationMinutes = r.PreparationMinutes
	if r.HourlyLaborRate != nil {
		p.HourlyLaborRate = *r.HourlyLaborRate
	}
	p.Description = r.Description
	p.Version = r.Version

	p.Lines = nil
	for i := range r.Lines {
		line, err := r.Lines[i].ToLine()
		if err != nil {
			return err
		}
		p.AddLine(line)
	}
	return nil
}

// ProductResponse is the response body for a product.
type ProductResponse struct {
	BaseResponse
	Code               string               `json:"code"`
	Name               string               `json:"name"`
	SellingPrice       types.Money          `json:"sellingPrice"`
	PriceOverridden    bool                 `json:"priceOverridden"`
	PreparationMinutes float64              `json:"preparationMinutes"`
	HourlyLaborRate    types.Money          `json:"hourlyLaborRate"`
	Description        *string              `json:"description,omitempty"`
	Lines              []RecipeLineResponse `json:"lines"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	lines := make([]RecipeLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, FromRecipeLine(l))
	}
	return &ProductResponse{
		BaseResponse:       FromBaseCatalog(p.BaseCatalog),
		Code:               p.Code,
		Name:               p.Name,
		SellingPrice:       p.SellingPrice,
		PriceOverridden:    p.PriceOverridden,
		PreparationMinutes: p.PreparationMinutes,
		HourlyLaborRate:    p.HourlyLaborRate,
		Description:        p.Description,
		Lines:              lines,
	}
}

// --- Costing DTOs ---

// CostingResponse carries the cost breakdown plus producibility.
type CostingResponse struct {
	Breakdown  costing.Breakdown  `json:"breakdown"`
	Producible costing.Producible `json:"producible"`
}
