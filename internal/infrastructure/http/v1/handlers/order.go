package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fornada/internal/core/apperror"
	"fornada/internal/domain/orders"
	"fornada/internal/infrastructure/http/v1/dto"
)

// OrderHandler serves customer orders and the reservation workflow.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	return &OrderHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter, ok := h.ParseListFilter(c)
	if !ok {
		return
	}
	if c.Query("orderBy") == "" {
		// Documents list newest first by default.
		filter.OrderBy = ""
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromOrder(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	order, err := h.service.GetByID(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(order))
}

// Check handles POST /orders/check - read-only stock sufficiency check
// for a draft, nothing is persisted.
func (h *OrderHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	draft, err := req.ToDraft()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid request").WithDetail("error", err.Error()))
		return
	}

	result, err := h.service.CheckStock(ctx, draft)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCheckResult(result))
}

// Submit handles POST /orders - run the reservation workflow and
// persist the confirmed order.
func (h *OrderHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	draft, err := req.ToDraft()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid request").WithDetail("error", err.Error()))
		return
	}

	order, check, err := h.service.Submit(ctx, draft, orders.ShortagePolicy(req.OnShortage))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitOrderResponse{
		Order: dto.FromOrder(order),
		Check: dto.FromCheckResult(check),
	})
}

// UpdateStatus handles POST /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateStatus(ctx, orderID, req.Status); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}
