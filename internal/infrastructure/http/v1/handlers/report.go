package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fornada/internal/domain/reports"
)

// ReportHandler serves read-side reports.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *reports.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CatalogCosting handles GET /reports/catalog - costing and producible
// units across the product catalog.
func (h *ReportHandler) CatalogCosting(c *gin.Context) {
	ctx := c.Request.Context()

	filter := reports.CatalogCostingFilter{
		Search: c.Query("search"),
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	report, err := h.service.CatalogCosting(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
