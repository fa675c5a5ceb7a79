package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fornada/internal/core/apperror"
	"fornada/internal/domain/catalogs/ingredient"
	"fornada/internal/domain/measure"
	"fornada/internal/domain/registers/stock"
	"fornada/internal/infrastructure/http/v1/dto"
)

// IngredientHandler extends the generic catalog handler with stock
// related endpoints.
type IngredientHandler struct {
	*CatalogHandler[*ingredient.Ingredient, dto.CreateIngredientRequest, dto.UpdateIngredientRequest]
	service *ingredient.Service
	stocks  *stock.Service
}

// NewIngredientHandler wires the ingredient catalog into the generic handler.
func NewIngredientHandler(
	base *BaseHandler,
	service *ingredient.Service,
	stocks *stock.Service,
) *IngredientHandler {
	config := CatalogHandlerConfig[
		*ingredient.Ingredient,
		dto.CreateIngredientRequest,
		dto.UpdateIngredientRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "ingredient",

		MapCreateDTO: func(req dto.CreateIngredientRequest) (*ingredient.Ingredient, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateIngredientRequest, existing *ingredient.Ingredient) (*ingredient.Ingredient, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *ingredient.Ingredient) any {
			return dto.FromIngredient(entity)
		},
	}

	return &IngredientHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
		stocks:         stocks,
	}
}

// LowStock handles GET /ingredients/low-stock - reorder candidates.
func (h *IngredientHandler) LowStock(c *gin.Context) {
	ctx := c.Request.Context()

	filter, ok := h.ParseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.FindLowStock(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromIngredient(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Resolve handles POST /ingredients/resolve - find by name or create a stub.
func (h *IngredientHandler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ResolveIngredientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	baseUnit := req.BaseUnit
	if !baseUnit.ValidBase() {
		baseUnit = measure.Count
	}

	ing, err := h.service.ResolveOrCreate(ctx, req.Name, baseUnit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromIngredient(ing))
}

// Movements handles GET /ingredients/:id/movements - stock history.
func (h *IngredientHandler) Movements(c *gin.Context) {
	ctx := c.Request.Context()

	ingredientID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	filter := stock.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if dir := c.Query("direction"); dir != "" {
		d := stock.Direction(dir)
		if d != stock.DirectionIn && d != stock.DirectionOut {
			h.Error(c, apperror.NewValidation("invalid direction").WithDetail("value", dir))
			return
		}
		filter.Direction = &d
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from date, RFC3339 expected"))
			return
		}
		filter.FromDate = &t
	}

	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to date, RFC3339 expected"))
			return
		}
		filter.ToDate = &t
	}

	movements, err := h.stocks.History(ctx, ingredientID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromMovements(movements)})
}
