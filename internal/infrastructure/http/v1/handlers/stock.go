package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fornada/internal/core/apperror"
	"fornada/internal/domain/registers/stock"
	"fornada/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the stock movement register.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock register handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RecordMovements handles POST /registers/stock/movements - manual
// purchases, spoilage and corrections.
func (h *StockHandler) RecordMovements(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordMovementsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	movements, err := req.ToMovements()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid request").WithDetail("error", err.Error()))
		return
	}

	if err := h.service.RecordMovements(ctx, movements); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": dto.FromMovements(movements)})
}
