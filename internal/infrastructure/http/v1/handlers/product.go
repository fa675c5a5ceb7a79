package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fornada/internal/core/apperror"
	"fornada/internal/core/id"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/costing"
	"fornada/internal/domain/registers/stock"
	"fornada/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog together with its recipe,
// costing and producibility endpoints. Products do not fit the generic
// catalog handler because every write carries recipe lines.
type ProductHandler struct {
	*BaseHandler
	service    *product.Service
	calculator *costing.Calculator
	stocks     *stock.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(
	base *BaseHandler,
	service *product.Service,
	calculator *costing.Calculator,
	stocks *stock.Service,
) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		service:     service,
		calculator:  calculator,
		stocks:      stocks,
	}
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter, ok := h.ParseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromProduct(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /products/:id - product with its recipe.
func (h *ProductHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	p, err := h.service.GetWithLines(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(p))
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := req.ToEntity()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid request").WithDetail("error", err.Error()))
		return
	}

	if err := h.service.Save(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromProduct(p))
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetWithLines(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(p); err != nil {
		h.Error(c, apperror.NewValidation("invalid request").WithDetail("error", err.Error()))
		return
	}

	if err := h.service.Save(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(p))
}

// Delete handles DELETE /products/:id - soft delete.
func (h *ProductHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, productID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDeletionMark handles POST /products/:id/deletion-mark.
func (h *ProductHandler) SetDeletionMark(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetDeletionMark(ctx, productID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "deletion mark updated")
}

// Costing handles GET /products/:id/costing - cost breakdown, pricing
// and how many units current stock supports.
func (h *ProductHandler) Costing(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	p, err := h.service.GetWithLines(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	levels, err := h.freshLevelsFor(c, p)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CostingResponse{
		Breakdown:  h.calculator.Breakdown(p),
		Producible: costing.ProducibleUnits(p, levels),
	})
}

// ResolveLines handles POST /products/:id/resolve-lines - link every
// virtual recipe line to a catalog ingredient, creating stubs as needed.
func (h *ProductHandler) ResolveLines(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	p, err := h.service.ResolveLines(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(p))
}

func (h *ProductHandler) freshLevelsFor(c *gin.Context, p *product.Product) (map[id.ID]float64, error) {
	ids := make([]id.ID, 0, len(p.Lines))
	for i := range p.Lines {
		if p.Lines[i].IsVirtual() {
			continue
		}
		ids = append(ids, *p.Lines[i].IngredientID)
	}
	return h.stocks.FreshLevels(c.Request.Context(), ids)
}
