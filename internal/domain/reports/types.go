// Package reports provides read-side report generation.
package reports

import (
	"time"

	"fornada/internal/core/id"
	"fornada/internal/domain/costing"
)

// CatalogCostingFilter defines the filter for the catalog costing report.
type CatalogCostingFilter struct {
	// Search matches product code or name
	Search string

	// Pagination
	Limit  int
	Offset int
}

// CatalogCostingItem is one product row in the costing report.
type CatalogCostingItem struct {
	ProductID  id.ID              `json:"productId"`
	Code       string             `json:"code"`
	Name       string             `json:"name"`
	Costing    costing.Breakdown  `json:"costing"`
	Producible costing.Producible `json:"producible"`
}

// CatalogCostingReport is the full costing report over the product
// catalog: current cost, pricing and producible units per product.
type CatalogCostingReport struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Items       []CatalogCostingItem `json:"items"`
	TotalItems  int64                `json:"totalItems"`
}
