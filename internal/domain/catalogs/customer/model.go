// Package customer provides the Customer catalog.
package customer

import (
	"context"

	"fornada/internal/core/entity"
)

// Customer represents a buyer placing orders.
type Customer struct {
	entity.Catalog

	// Phone is the contact phone number
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is the default delivery address
	Address *string `db:"address" json:"address,omitempty"`

	// Notes is free-form info (allergies, preferences, payment habits)
	Notes *string `db:"notes" json:"notes,omitempty"`
}

// New creates a Customer with required fields.
func New(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}
