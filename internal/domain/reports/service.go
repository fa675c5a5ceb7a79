package reports

import (
	"context"
	"fmt"
	"time"

	"fornada/internal/core/id"
	"fornada/internal/domain"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/costing"
)

// ProductSource is the slice of the product service the reports need.
type ProductSource interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error)
	GetWithLines(ctx context.Context, productID id.ID) (*product.Product, error)
}

// StockReader reads current stock levels for producible estimation.
type StockReader interface {
	FreshLevels(ctx context.Context, ingredientIDs []id.ID) (map[id.ID]float64, error)
}

// Service provides report generation operations.
type Service struct {
	products   ProductSource
	stocks     StockReader
	calculator *costing.Calculator
}

// NewService creates a new reports service.
func NewService(products ProductSource, stocks StockReader, calculator *costing.Calculator) *Service {
	return &Service{
		products:   products,
		stocks:     stocks,
		calculator: calculator,
	}
}

// CatalogCosting generates the costing report over the product catalog.
// Stock is read once for the union of linked ingredients, so every row
// reflects the same snapshot.
func (s *Service) CatalogCosting(ctx context.Context, filter CatalogCostingFilter) (*CatalogCostingReport, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	list, err := s.products.List(ctx, domain.ListFilter{
		Search:  filter.Search,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		OrderBy: "name",
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]*product.Product, 0, len(list.Items))
	seen := make(map[id.ID]struct{})
	var ingredientIDs []id.ID

	for _, item := range list.Items {
		p, err := s.products.GetWithLines(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", item.ID, err)
		}
		products = append(products, p)

		for i := range p.Lines {
			line := &p.Lines[i]
			if line.IsVirtual() {
				continue
			}
			if _, ok := seen[*line.IngredientID]; ok {
				continue
			}
			seen[*line.IngredientID] = struct{}{}
			ingredientIDs = append(ingredientIDs, *line.IngredientID)
		}
	}

	levels, err := s.stocks.FreshLevels(ctx, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("read stock levels: %w", err)
	}

	report := &CatalogCostingReport{
		GeneratedAt: time.Now().UTC(),
		Items:       make([]CatalogCostingItem, 0, len(products)),
		TotalItems:  list.TotalCount,
	}
	for _, p := range products {
		report.Items = append(report.Items, CatalogCostingItem{
			ProductID:  p.ID,
			Code:       p.Code,
			Name:       p.Name,
			Costing:    s.calculator.Breakdown(p),
			Producible: costing.ProducibleUnits(p, levels),
		})
	}
	return report, nil
}
