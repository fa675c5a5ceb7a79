package orders

import (
	"context"

	"fornada/internal/core/id"
	"fornada/internal/domain"
)

// Repository defines the interface for Order persistence.
type Repository interface {
	// Create inserts the order with its lines.
	Create(ctx context.Context, order *Order) error

	// GetByID retrieves an order with its lines.
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// GetByNumber retrieves an order by document number.
	GetByNumber(ctx context.Context, number string) (*Order, error)

	// List retrieves orders with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error)

	// UpdateStatus moves an order to a new status.
	UpdateStatus(ctx context.Context, orderID id.ID, status Status) error
}
