package entity

import (
	"context"

	"fornada/internal/core/apperror"
)

// Catalog is the base type for reference data.
// Examples: Ingredients, Products, Customers.
type Catalog struct {
	BaseCatalog

	// Code is a human-readable identifier (unique, auto-generated when empty)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Code:        code,
		Name:        name,
	}
}

// Validate implements Validatable.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	// Code may be auto-generated at create time, so it is optional here.

	return nil
}
