// Package orders provides the customer Order document and the stock
// reservation workflow that runs when an order is submitted.
package orders

import (
	"context"
	"time"

	"fornada/internal/core/apperror"
	"fornada/internal/core/entity"
	"fornada/internal/core/id"
	"fornada/internal/core/types"
)

// Status of an order document.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Order represents a customer order.
type Order struct {
	entity.Document

	CustomerID id.ID  `db:"customer_id" json:"customerId"`
	Status     Status `db:"status" json:"status"`

	DeliveryDate  *time.Time `db:"delivery_date" json:"deliveryDate,omitempty"`
	DeliveryNotes *string    `db:"delivery_notes" json:"deliveryNotes,omitempty"`

	// Totals (calculated from lines)
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	TotalCost   types.Money `db:"total_cost" json:"totalCost"`

	// Table part: ordered products
	Lines []OrderLine `db:"-" json:"lines"`
}

// OrderLine represents a line in the order.
//
// UnitCost is frozen at submission: later ingredient price changes
// never rewrite the recorded profitability of a past order.
type OrderLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID       `db:"product_id" json:"productId"`
	Quantity  float64     `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	UnitCost  types.Money `db:"unit_cost" json:"unitCost"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// New creates a new draft order.
func New(customerID id.ID) *Order {
	return &Order{
		Document:    entity.NewDocument(),
		CustomerID:  customerID,
		Status:      StatusDraft,
		TotalAmount: types.ZeroMoney(),
		TotalCost:   types.ZeroMoney(),
		Lines:       make([]OrderLine, 0),
	}
}

// AddLine adds a line and recalculates totals.
func (o *Order) AddLine(productID id.ID, quantity float64, unitPrice, unitCost types.Money) {
	line := OrderLine{
		LineID:    id.New(),
		LineNo:    len(o.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		UnitCost:  unitCost,
		Amount:    unitPrice.Mul(types.NewMoney(quantity)).Round(2),
	}

	o.Lines = append(o.Lines, line)
	o.recalculateTotals()
}

func (o *Order) recalculateTotals() {
	o.TotalAmount = types.ZeroMoney()
	o.TotalCost = types.ZeroMoney()

	for _, line := range o.Lines {
		o.TotalAmount = o.TotalAmount.Add(line.Amount)
		o.TotalCost = o.TotalCost.Add(line.UnitCost.Mul(types.NewMoney(line.Quantity)))
	}
	o.TotalCost = o.TotalCost.Round(2)
}

// Validate implements entity.Validatable.
func (o *Order) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	switch o.Status {
	case StatusDraft, StatusConfirmed, StatusDelivered, StatusCancelled:
	default:
		return apperror.NewValidation("invalid order status").
			WithDetail("field", "status").
			WithDetail("value", string(o.Status))
	}

	if len(o.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range o.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// Margin returns the order's profit as a share of its total amount.
func (o *Order) Margin() types.Money {
	if o.TotalAmount.IsZero() {
		return types.ZeroMoney()
	}
	return o.TotalAmount.Sub(o.TotalCost).Div(o.TotalAmount).Mul(types.NewMoney(100)).Round(2)
}
