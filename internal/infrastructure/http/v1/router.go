// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"fornada/internal/config"
	"fornada/internal/core/id"
	"fornada/internal/domain"
	"fornada/internal/domain/audit"
	"fornada/internal/domain/catalogs/customer"
	"fornada/internal/domain/catalogs/ingredient"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/costing"
	"fornada/internal/domain/orders"
	"fornada/internal/domain/registers/stock"
	"fornada/internal/domain/reports"
	"fornada/internal/infrastructure/http/v1/handlers"
	"fornada/internal/infrastructure/http/v1/middleware"
	"fornada/internal/infrastructure/storage/postgres"
	"fornada/internal/infrastructure/storage/postgres/catalog_repo"
	"fornada/internal/infrastructure/storage/postgres/document_repo"
	"fornada/internal/infrastructure/storage/postgres/register_repo"
	"fornada/pkg/logger"
	"fornada/pkg/numerator"
)

// RouterConfig holds dependencies for the HTTP router.
type RouterConfig struct {
	// Pool is the database connection pool.
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// Pricing controls the suggested price calculation.
	Pricing config.PricingConfig
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	deps, err := buildServices(cfg)
	if err != nil {
		return nil, err
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerCatalogRoutes(v1, deps)
		registerOrderRoutes(v1, deps)
		registerStockRoutes(v1, deps)
		registerReportRoutes(v1, deps)
	}

	return router, nil
}

// services holds the wired domain layer shared by all route groups.
type services struct {
	ingredients *ingredient.Service
	customers   *customer.Service
	products    *product.Service
	stocks      *stock.Service
	orders      *orders.Service
	calculator  *costing.Calculator
	reports     *reports.Service
}

func buildServices(cfg RouterConfig) (*services, error) {
	txManager := postgres.NewTxManager(cfg.Pool)
	num := numerator.New(cfg.Pool)

	auditSvc, err := postgres.NewAuditService(txManager)
	if err != nil {
		return nil, err
	}

	ingredientRepo := catalog_repo.NewIngredientRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	orderRepo := document_repo.NewOrderRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)

	ingredientSvc := ingredient.NewService(domain.CatalogServiceConfig[*ingredient.Ingredient]{
		TxManager: txManager,
		Numerator: num,
	}, ingredientRepo)
	customerSvc := customer.NewService(domain.CatalogServiceConfig[*customer.Customer]{
		TxManager: txManager,
		Numerator: num,
	}, customerRepo)
	productSvc := product.NewService(domain.CatalogServiceConfig[*product.Product]{
		TxManager: txManager,
		Numerator: num,
	}, productRepo, ingredientSvc)

	registerAuditHooks(ingredientSvc.Hooks(), auditSvc, "ingredient")
	registerAuditHooks(customerSvc.Hooks(), auditSvc, "customer")
	registerAuditHooks(productSvc.Hooks(), auditSvc, "product")

	stockSvc := stock.NewService(stockRepo, txManager)
	calculator := costing.NewCalculator(costing.Config{
		TargetCostRatio:        cfg.Pricing.TargetCostRatio,
		DefaultHourlyLaborRate: cfg.Pricing.DefaultHourlyLaborRate,
	})
	orderSvc := orders.NewService(orderRepo, productSvc, customerSvc, stockSvc, num, calculator, auditSvc)
	reportSvc := reports.NewService(productSvc, stockSvc, calculator)

	return &services{
		ingredients: ingredientSvc,
		customers:   customerSvc,
		products:    productSvc,
		stocks:      stockSvc,
		orders:      orderSvc,
		calculator:  calculator,
		reports:     reportSvc,
	}, nil
}

// registerAuditHooks records catalog lifecycle changes in the audit log.
// A failed audit write is logged but never blocks the change itself.
func registerAuditHooks[T interface{ GetID() id.ID }](
	hooks *domain.HookRegistry[T],
	recorder audit.Recorder,
	entityType string,
) {
	record := func(action audit.Action) domain.Hook[T] {
		return func(ctx context.Context, item T) error {
			if err := recorder.Record(ctx, entityType, item.GetID(), action, nil); err != nil {
				logger.Warn(ctx, "audit record failed",
					"entity", entityType,
					"action", string(action),
					"error", err)
			}
			return nil
		}
	}

	hooks.On(domain.AfterCreate, record(audit.ActionCreate))
	hooks.On(domain.AfterUpdate, record(audit.ActionUpdate))
	hooks.On(domain.AfterDelete, record(audit.ActionDelete))
}

func registerCatalogRoutes(rg *gin.RouterGroup, deps *services) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- INGREDIENTS ---
	{
		handler := handlers.NewIngredientHandler(baseHandler, deps.ingredients, deps.stocks)
		group := catalogs.Group("/ingredients")
		group.GET("/low-stock", handler.LowStock)
		group.POST("/resolve", handler.Resolve)
		group.GET("/:id/movements", handler.Movements)
		RegisterCatalogRoutes(group, handler)
	}

	// --- CUSTOMERS ---
	{
		handler := handlers.NewCustomerHandler(baseHandler, deps.customers)
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler)
	}

	// --- PRODUCTS ---
	{
		handler := handlers.NewProductHandler(baseHandler, deps.products, deps.calculator, deps.stocks)
		group := catalogs.Group("/products")
		group.GET("/:id/costing", handler.Costing)
		group.POST("/:id/resolve-lines", handler.ResolveLines)
		RegisterCatalogRoutes(group, handler)
	}
}

func registerOrderRoutes(rg *gin.RouterGroup, deps *services) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewOrderHandler(baseHandler, deps.orders)

	group := rg.Group("/orders")
	group.GET("", handler.List)
	group.POST("", handler.Submit)
	group.POST("/check", handler.Check)
	group.GET("/:id", handler.Get)
	group.POST("/:id/status", handler.UpdateStatus)
}

func registerStockRoutes(rg *gin.RouterGroup, deps *services) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewStockHandler(baseHandler, deps.stocks)

	group := rg.Group("/registers/stock")
	group.POST("/movements", handler.RecordMovements)
}

func registerReportRoutes(rg *gin.RouterGroup, deps *services) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewReportHandler(baseHandler, deps.reports)

	group := rg.Group("/reports")
	group.GET("/catalog", handler.CatalogCosting)
}
