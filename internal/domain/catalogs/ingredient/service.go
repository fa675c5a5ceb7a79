package ingredient

import (
	"context"
	"fmt"
	"time"

	"fornada/internal/core/apperror"
	"fornada/internal/domain"
	"fornada/internal/domain/measure"
	"fornada/pkg/numerator"
)

// Service provides business logic for the Ingredient catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Ingredient]
	repo Repository
}

// NewService creates a new Ingredient service.
func NewService(cfg domain.CatalogServiceConfig[*Ingredient], repo Repository) *Service {
	cfg.Repo = repo
	cfg.EntityName = "ingredient"
	base := domain.NewCatalogService(cfg)

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

// prepareForCreate handles code generation.
func (s *Service) prepareForCreate(ctx context.Context, item *Ingredient) error {
	if item.Code == "" {
		code, err := s.Numerator().GetNextNumber(ctx, numerator.DefaultConfig("ING"),
			&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}

// FindByName retrieves an ingredient by exact name, case-insensitively.
func (s *Service) FindByName(ctx context.Context, name string) (*Ingredient, error) {
	return s.repo.FindByName(ctx, name)
}

// ResolveOrCreate returns an existing ingredient matching the name, or
// creates a stub with the given base unit. This is how free-typed recipe
// lines become tracked ingredients: the lookup is an exact match ignoring
// case, not fuzzy.
func (s *Service) ResolveOrCreate(ctx context.Context, name string, baseUnit measure.Unit) (*Ingredient, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	item := New("", name, baseUnit)
	if err := s.Create(ctx, item); err != nil {
		// Another request may have created it concurrently.
		if apperror.IsCode(err, apperror.CodeConflict) || apperror.IsCode(err, apperror.CodeDuplicate) {
			return s.repo.FindByName(ctx, name)
		}
		return nil, err
	}
	return item, nil
}

// FindLowStock retrieves ingredients with stock at or below minimum.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Ingredient], error) {
	return s.repo.FindLowStock(ctx, filter)
}
