package dto

import (
	"time"

	"fornada/internal/core/id"
	"fornada/internal/core/types"
	"fornada/internal/domain/orders"
)

// --- Request DTOs ---

// OrderLineRequest is one requested product.
type OrderLineRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
}

// SubmitOrderRequest is the request body for checking or submitting an
// order. OnShortage picks the policy when stock does not cover the order.
type SubmitOrderRequest struct {
	CustomerID    string             `json:"customerId" binding:"required"`
	DeliveryDate  *time.Time         `json:"deliveryDate"`
	DeliveryNotes *string            `json:"deliveryNotes"`
	Comment       string             `json:"comment"`
	OnShortage    string             `json:"onShortage"`
	Lines         []OrderLineRequest `json:"lines" binding:"required"`
}

// ToDraft converts the request to an order draft.
func (r *SubmitOrderRequest) ToDraft() (orders.Draft, error) {
	draft := orders.Draft{
		DeliveryDate:  r.DeliveryDate,
		DeliveryNotes: r.DeliveryNotes,
		Comment:       r.Comment,
	}

	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return draft, err
	}
	draft.CustomerID = customerID

	draft.Lines = make([]orders.DraftLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return draft, err
		}
		draft.Lines = append(draft.Lines, orders.DraftLine{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}
	return draft, nil
}

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status orders.Status `json:"status" binding:"required"`
}

// --- Response DTOs ---

// OrderLineResponse is one order line in API responses.
type OrderLineResponse struct {
	LineID    string      `json:"lineId"`
	LineNo    int         `json:"lineNo"`
	ProductID string      `json:"productId"`
	Quantity  float64     `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	UnitCost  types.Money `json:"unitCost"`
	Amount    types.Money `json:"amount"`
}

// OrderResponse is the response body for an order.
type OrderResponse struct {
	BaseResponse
	Number        string              `json:"number"`
	Date          time.Time           `json:"date"`
	CustomerID    string              `json:"customerId"`
	Status        orders.Status       `json:"status"`
	DeliveryDate  *time.Time          `json:"deliveryDate,omitempty"`
	DeliveryNotes *string             `json:"deliveryNotes,omitempty"`
	Comment       string              `json:"comment,omitempty"`
	TotalAmount   types.Money         `json:"totalAmount"`
	TotalCost     types.Money         `json:"totalCost"`
	MarginPercent types.Money         `json:"marginPercent"`
	Lines         []OrderLineResponse `json:"lines"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// FromOrder creates response DTO from domain entity.
func FromOrder(o *orders.Order) *OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			LineID:    l.LineID.String(),
			LineNo:    l.LineNo,
			ProductID: l.ProductID.String(),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			UnitCost:  l.UnitCost,
			Amount:    l.Amount,
		})
	}

	return &OrderResponse{
		BaseResponse: BaseResponse{
			ID:           o.ID.String(),
			DeletionMark: o.DeletionMark,
			Version:      o.Version,
		},
		Number:        o.Number,
		Date:          o.Date,
		CustomerID:    o.CustomerID.String(),
		Status:        o.Status,
		DeliveryDate:  o.DeliveryDate,
		DeliveryNotes: o.DeliveryNotes,
		Comment:       o.Comment,
		TotalAmount:   o.TotalAmount,
		TotalCost:     o.TotalCost,
		MarginPercent: o.Margin(),
		Lines:         lines,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// CheckStockResponse is the outcome of a stock sufficiency check.
type CheckStockResponse struct {
	State        orders.State         `json:"state"`
	Sufficient   bool                 `json:"sufficient"`
	Requirements []orders.Requirement `json:"requirements"`
	Shortfalls   []orders.Shortfall   `json:"shortfalls,omitempty"`
}

// FromCheckResult creates a response from the workflow check result.
func FromCheckResult(r *orders.CheckResult) *CheckStockResponse {
	return &CheckStockResponse{
		State:        r.State,
		Sufficient:   r.Sufficient,
		Requirements: r.Requirements,
		Shortfalls:   r.Shortfalls,
	}
}

// SubmitOrderResponse couples the persisted order with the check outcome.
type SubmitOrderResponse struct {
	Order *OrderResponse      `json:"order"`
	Check *CheckStockResponse `json:"check"`
}
