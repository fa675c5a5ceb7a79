// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fornada/internal/core/id"
	"fornada/internal/domain/registers/stock"
	"fornada/internal/infrastructure/storage/postgres"
)

const stockMovementsTable = "stock_movements"

// StockRepo implements stock.Repository.
// Movements are the source of truth; the ingredient row carries the
// running balance and both change in the same transaction.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ stock.Repository = (*StockRepo)(nil)

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Apply inserts movements and adjusts ingredient balances in one transaction.
func (r *StockRepo) Apply(ctx context.Context, movements []stock.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	return r.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := r.insertMovements(txCtx, movements); err != nil {
			return err
		}
		return r.adjustBalances(txCtx, movements)
	})
}

func (r *StockRepo) insertMovements(ctx context.Context, movements []stock.Movement) error {
	q := r.builder.Insert(stockMovementsTable).Columns(
		"line_id", "ingredient_id", "direction",
		"quantity", "reason", "recorder_id", "created_at",
	)

	for _, m := range movements {
		q = q.Values(
			m.LineID, m.IngredientID, m.Direction,
			m.Quantity, m.Reason, m.RecorderID, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return nil
}

func (r *StockRepo) adjustBalances(ctx context.Context, movements []stock.Movement) error {
	// Collapse movements per ingredient so each row is touched once.
	deltas := make(map[id.ID]float64, len(movements))
	order := make([]id.ID, 0, len(movements))
	for _, m := range movements {
		if _, seen := deltas[m.IngredientID]; !seen {
			order = append(order, m.IngredientID)
		}
		deltas[m.IngredientID] += m.SignedQuantity()
	}

	sql := `
		UPDATE ingredients
		SET stock_quantity = stock_quantity + $1,
			version = version + 1
		WHERE id = $2
	`

	querier := r.txManager.GetQuerier(ctx)
	for _, ingredientID := range order {
		result, err := querier.Exec(ctx, sql, deltas[ingredientID], ingredientID)
		if err != nil {
			return fmt.Errorf("adjust balance: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("adjust balance: ingredient %s not found", ingredientID)
		}
	}

	return nil
}

// History returns movements for an ingredient, newest first.
func (r *StockRepo) History(ctx context.Context, ingredientID id.ID, filter stock.MovementFilter) ([]stock.Movement, error) {
	q := r.builder.Select(
		"line_id", "ingredient_id", "direction",
		"quantity", "reason", "recorder_id", "created_at",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"ingredient_id": ingredientID})

	if filter.Direction != nil {
		q = q.Where(squirrel.Eq{"direction": *filter.Direction})
	}

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}

	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.ToDate})
	}

	q = q.OrderBy("created_at DESC", "line_id DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []stock.Movement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

// FreshLevels reads current stock for the given ingredients directly
// from storage.
func (r *StockRepo) FreshLevels(ctx context.Context, ingredientIDs []id.ID) (map[id.ID]float64, error) {
	levels := make(map[id.ID]float64, len(ingredientIDs))
	if len(ingredientIDs) == 0 {
		return levels, nil
	}

	sql := `
		SELECT id, stock_quantity
		FROM ingredients
		WHERE id = ANY($1)
	`

	querier := r.txManager.GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("query levels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ingredientID id.ID
		var quantity float64
		if err := rows.Scan(&ingredientID, &quantity); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		levels[ingredientID] = quantity
	}

	return levels, rows.Err()
}
