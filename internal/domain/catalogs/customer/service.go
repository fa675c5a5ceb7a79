package customer

import (
	"context"
	"fmt"
	"time"

	"fornada/internal/domain"
	"fornada/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo Repository
}

// NewService creates a new Customer service.
func NewService(cfg domain.CatalogServiceConfig[*Customer], repo Repository) *Service {
	cfg.Repo = repo
	cfg.EntityName = "customer"
	base := domain.NewCatalogService(cfg)

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Customer) error {
	if item.Code == "" {
		code, err := s.Numerator().GetNextNumber(ctx, numerator.DefaultConfig("CUS"),
			&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}
