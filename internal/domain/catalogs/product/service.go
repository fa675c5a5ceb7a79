package product

import (
	"context"
	"fmt"
	"time"

	"fornada/internal/core/id"
	"fornada/internal/domain"
	"fornada/internal/domain/catalogs/ingredient"
	"fornada/internal/domain/measure"
	"fornada/pkg/numerator"
)

// IngredientResolver is the slice of the ingredient service the product
// catalog needs for linking recipe lines.
type IngredientResolver interface {
	GetByID(ctx context.Context, ingredientID id.ID) (*ingredient.Ingredient, error)
	ResolveOrCreate(ctx context.Context, name string, baseUnit measure.Unit) (*ingredient.Ingredient, error)
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo        Repository
	ingredients IngredientResolver
}

// NewService creates a new Product service.
func NewService(cfg domain.CatalogServiceConfig[*Product], repo Repository, ingredients IngredientResolver) *Service {
	cfg.Repo = repo
	cfg.EntityName = "product"
	base := domain.NewCatalogService(cfg)

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		ingredients:    ingredients,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Product) error {
	if item.Code == "" {
		code, err := s.Numerator().GetNextNumber(ctx, numerator.DefaultConfig("PRD"),
			&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}

// Save persists a product together with its recipe lines.
// Linked lines are synced with the current ingredient state first, so
// stale unit costs and conversion parameters never reach storage.
func (s *Service) Save(ctx context.Context, p *Product) error {
	for i := range p.Lines {
		line := &p.Lines[i]
		if id.IsNil(line.LineID) {
			line.LineID = id.New()
		}
		line.LineNo = i + 1
		if line.IsVirtual() {
			continue
		}
		if err := s.syncLine(ctx, line); err != nil {
			return err
		}
	}

	var err error
	if exists, _ := s.Exists(ctx, p.ID); exists {
		err = s.Update(ctx, p)
	} else {
		err = s.Create(ctx, p)
	}
	if err != nil {
		return err
	}

	return s.repo.SaveLines(ctx, p.ID, p.Lines)
}

// GetWithLines loads a product with its recipe, refreshing linked line
// costs from the ingredient catalog. Recipe costing always sees current
// purchase prices; only order lines freeze cost.
func (s *Service) GetWithLines(ctx context.Context, productID id.ID) (*Product, error) {
	p, err := s.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load recipe lines: %w", err)
	}

	for i := range lines {
		line := &lines[i]
		if line.IsVirtual() {
			continue
		}
		if err := s.syncLine(ctx, line); err != nil {
			// A deleted ingredient leaves the line with its stored cost.
			continue
		}
	}

	p.Lines = lines
	return p, nil
}

// ResolveLines links every virtual line of the product to a catalog
// ingredient, creating stubs as needed, and persists the result.
func (s *Service) ResolveLines(ctx context.Context, productID id.ID) (*Product, error) {
	p, err := s.GetWithLines(ctx, productID)
	if err != nil {
		return nil, err
	}

	changed := false
	for i := range p.Lines {
		line := &p.Lines[i]
		if !line.IsVirtual() {
			continue
		}

		baseUnit := line.DisplayUnit
		if !baseUnit.ValidBase() {
			baseUnit = measure.Count
		}

		ing, err := s.ingredients.ResolveOrCreate(ctx, line.Name, baseUnit)
		if err != nil {
			return nil, fmt.Errorf("resolve line %q: %w", line.Name, err)
		}

		ingID := ing.ID
		line.IngredientID = &ingID
		if err := s.syncLine(ctx, line); err != nil {
			return nil, err
		}
		changed = true
	}

	if changed {
		if err := s.repo.SaveLines(ctx, productID, p.Lines); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// syncLine copies unit, cost and package parameters from the linked
// ingredient and recomputes the base quantity from the authored value.
func (s *Service) syncLine(ctx context.Context, line *RecipeIngredient) error {
	ing, err := s.ingredients.GetByID(ctx, *line.IngredientID)
	if err != nil {
		return err
	}

	line.Name = ing.Name
	line.BaseUnit = ing.BaseUnit
	line.UnitCost = ing.CostPerUnit
	line.PackageSize = ing.PackageSize
	line.PackageUnit = ing.PackageUnit

	if line.DisplayUnit == "" {
		line.DisplayUnit = ing.BaseUnit
		line.DisplayQuantity = line.Quantity
	}
	line.SetDisplayQuantity(line.DisplayQuantity, line.DisplayUnit)
	return nil
}
