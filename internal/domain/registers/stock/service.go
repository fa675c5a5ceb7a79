package stock

import (
	"context"
	"fmt"

	"fornada/internal/core/id"
	"fornada/internal/core/tx"
	"fornada/pkg/logger"
)

// Service provides business operations for the stock register.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new stock register service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// RecordMovements validates and applies stock movements atomically.
func (s *Service) RecordMovements(ctx context.Context, movements []Movement) error {
	if len(movements) == 0 {
		return nil
	}

	for i := range movements {
		m := &movements[i]
		if id.IsNil(m.LineID) {
			m.LineID = id.New()
		}
		if err := m.Validate(ctx); err != nil {
			return fmt.Errorf("movement %d: %w", i, err)
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Apply(ctx, movements)
	})
	if err != nil {
		return fmt.Errorf("apply movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements", "count", len(movements))
	return nil
}

// History returns movement history for an ingredient.
func (s *Service) History(ctx context.Context, ingredientID id.ID, filter MovementFilter) ([]Movement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.History(ctx, ingredientID, filter)
}

// FreshLevels reads current stock for the given ingredients.
func (s *Service) FreshLevels(ctx context.Context, ingredientIDs []id.ID) (map[id.ID]float64, error) {
	if len(ingredientIDs) == 0 {
		return map[id.ID]float64{}, nil
	}
	return s.repo.FreshLevels(ctx, ingredientIDs)
}
