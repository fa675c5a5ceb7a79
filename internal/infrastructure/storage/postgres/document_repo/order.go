package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fornada/internal/core/apperror"
	"fornada/internal/core/id"
	"fornada/internal/domain/orders"
	"fornada/internal/infrastructure/storage/postgres"
)

const (
	ordersTable     = "orders"
	orderLinesTable = "order_lines"
)

// OrderRepo implements orders.Repository.
type OrderRepo struct {
	*BaseDocumentRepo[*orders.Order]

	txManager *postgres.TxManager
}

var _ orders.Repository = (*OrderRepo)(nil)

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txManager *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*orders.Order](
			txManager,
			ordersTable,
			postgres.ExtractDBColumns[orders.Order](),
			func() *orders.Order { return &orders.Order{} },
		),
		txManager: txManager,
	}
}

// Create inserts the order together with its lines in one transaction.
func (r *OrderRepo) Create(ctx context.Context, order *orders.Order) error {
	return r.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := r.insertHeader(txCtx, order); err != nil {
			return err
		}
		return r.saveLines(txCtx, order.ID, order.Lines)
	})
}

// GetByID retrieves an order with its lines.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error) {
	order, err := r.getHeaderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Lines, err = r.getLines(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetByNumber retrieves an order by document number.
func (r *OrderRepo) GetByNumber(ctx context.Context, number string) (*orders.Order, error) {
	order, err := r.getHeaderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	order.Lines, err = r.getLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus moves an order to a new status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	q := r.Builder().
		Update(ordersTable).
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(ordersTable, orderID.String())
	}

	return nil
}

func (r *OrderRepo) getLines(ctx context.Context, orderID id.ID) ([]orders.OrderLine, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "product_id",
			"quantity", "unit_price", "unit_cost", "amount",
		).
		From(orderLinesTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []orders.OrderLine
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

func (r *OrderRepo) saveLines(ctx context.Context, orderID id.ID, lines []orders.OrderLine) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + orderLinesTable + " WHERE order_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, orderID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(orderLinesTable).
		Columns(
			"line_id", "order_id", "line_no", "product_id",
			"quantity", "unit_price", "unit_cost", "amount",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, orderID, line.LineNo, line.ProductID,
			line.Quantity, line.UnitPrice, line.UnitCost, line.Amount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}
