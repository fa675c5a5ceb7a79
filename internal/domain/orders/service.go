package orders

import (
	"context"
	"fmt"
	"time"

	"fornada/internal/core/apperror"
	"fornada/internal/core/id"
	"fornada/internal/domain"
	"fornada/internal/domain/audit"
	"fornada/internal/domain/catalogs/product"
	"fornada/internal/domain/costing"
	"fornada/pkg/logger"
	"fornada/pkg/numerator"
)

// ShortagePolicy tells Submit what to do when stock does not cover the
// order.
type ShortagePolicy string

const (
	// PolicyFail rejects the order with the shortfall list.
	PolicyFail ShortagePolicy = "fail"

	// PolicyProceed commits anyway, leaving the shortage for
	// production to deal with.
	PolicyProceed ShortagePolicy = "proceed"

	// PolicyTopUp records covering purchases first, then commits.
	PolicyTopUp ShortagePolicy = "topUp"
)

// ProductLoader is the slice of the product service the order workflow
// needs.
type ProductLoader interface {
	GetWithLines(ctx context.Context, productID id.ID) (*product.Product, error)
}

// CustomerChecker verifies customer references.
type CustomerChecker interface {
	Exists(ctx context.Context, customerID id.ID) (bool, error)
}

// StockRegister combines the reads and writes the reservation needs.
type StockRegister interface {
	StockReader
	MovementApplier
}

// CheckResult is the outcome of a stock sufficiency check.
type CheckResult struct {
	State        State         `json:"state"`
	Sufficient   bool          `json:"sufficient"`
	Requirements []Requirement `json:"requirements"`
	Shortfalls   []Shortfall   `json:"shortfalls,omitempty"`
}

// Service provides business logic for customer orders.
type Service struct {
	repo       Repository
	products   ProductLoader
	customers  CustomerChecker
	stocks     StockRegister
	numerator  *numerator.Service
	calculator *costing.Calculator
	audit      audit.Recorder
}

// NewService creates a new order service.
func NewService(
	repo Repository,
	products ProductLoader,
	customers CustomerChecker,
	stocks StockRegister,
	num *numerator.Service,
	calculator *costing.Calculator,
	auditor audit.Recorder,
) *Service {
	if auditor == nil {
		auditor = audit.Noop{}
	}
	return &Service{
		repo:       repo,
		products:   products,
		customers:  customers,
		stocks:     stocks,
		numerator:  num,
		calculator: calculator,
		audit:      auditor,
	}
}

// Draft is the input for checking or submitting an order.
type Draft struct {
	CustomerID    id.ID
	DeliveryDate  *time.Time
	DeliveryNotes *string
	Comment       string
	Lines         []DraftLine
}

// DraftLine is one requested product.
type DraftLine struct {
	ProductID id.ID
	Quantity  float64
}

// buildOrder prices a draft into an order document: the unit price
// comes from the product, the unit cost is the current total cost,
// frozen into the line.
func (s *Service) buildOrder(ctx context.Context, draft Draft) (*Order, map[id.ID]*product.Product, error) {
	if id.IsNil(draft.CustomerID) {
		return nil, nil, apperror.NewValidation("customer is required").WithDetail("field", "customerId")
	}
	exists, err := s.customers.Exists(ctx, draft.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return nil, nil, apperror.NewNotFound("customer", draft.CustomerID.String())
	}
	if len(draft.Lines) == 0 {
		return nil, nil, apperror.NewValidation("at least one line is required").WithDetail("field", "lines")
	}

	order := New(draft.CustomerID)
	order.DeliveryDate = draft.DeliveryDate
	order.DeliveryNotes = draft.DeliveryNotes
	order.Comment = draft.Comment

	productsByID := make(map[id.ID]*product.Product, len(draft.Lines))
	for _, line := range draft.Lines {
		p, ok := productsByID[line.ProductID]
		if !ok {
			p, err = s.products.GetWithLines(ctx, line.ProductID)
			if err != nil {
				return nil, nil, err
			}
			productsByID[line.ProductID] = p
		}
		order.AddLine(p.ID, line.Quantity, p.SellingPrice, s.calculator.TotalCost(p))
	}

	if err := order.Validate(ctx); err != nil {
		return nil, nil, err
	}
	return order, productsByID, nil
}

// CheckStock runs a read-only sufficiency check for a draft.
func (s *Service) CheckStock(ctx context.Context, draft Draft) (*CheckResult, error) {
	order, productsByID, err := s.buildOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	requirements := AggregateRequirements(order.Lines, productsByID)
	res := NewReservation(order, requirements, s.stocks, s.stocks, s.repo)

	state, shortfalls, err := res.Check(ctx)
	if err != nil {
		return nil, err
	}
	_ = res.Abort()

	return &CheckResult{
		State:        state,
		Sufficient:   state == StateSufficient,
		Requirements: requirements,
		Shortfalls:   shortfalls,
	}, nil
}

// Submit runs the full reservation workflow for a draft and, unless
// stock rules say otherwise, persists the confirmed order.
func (s *Service) Submit(ctx context.Context, draft Draft, policy ShortagePolicy) (*Order, *CheckResult, error) {
	switch policy {
	case PolicyFail, PolicyProceed, PolicyTopUp:
	case "":
		policy = PolicyFail
	default:
		return nil, nil, apperror.NewValidation("invalid shortage policy").
			WithDetail("field", "onShortage").
			WithDetail("value", string(policy))
	}

	order, productsByID, err := s.buildOrder(ctx, draft)
	if err != nil {
		return nil, nil, err
	}

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("ORD"), nil, time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("generate order number: %w", err)
	}
	order.Number = number

	requirements := AggregateRequirements(order.Lines, productsByID)
	res := NewReservation(order, requirements, s.stocks, s.stocks, s.repo)

	state, shortfalls, err := res.Check(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := &CheckResult{
		State:        state,
		Sufficient:   state == StateSufficient,
		Requirements: requirements,
		Shortfalls:   shortfalls,
	}

	if state == StateSufficient {
		if err := res.Commit(ctx); err != nil {
			return nil, result, err
		}
	} else {
		switch policy {
		case PolicyFail:
			_ = res.Abort()
			return nil, result, apperror.NewInsufficientStock(shortfalls)
		case PolicyProceed:
			logger.Warn(ctx, "committing order with insufficient stock",
				"order_number", order.Number,
				"shortfalls", len(shortfalls),
			)
			if err := res.ProceedAnyway(ctx); err != nil {
				return nil, result, err
			}
		case PolicyTopUp:
			if err := res.TopUpAndCommit(ctx); err != nil {
				return nil, result, err
			}
		}
	}

	result.State = res.State()
	if err := s.audit.Record(ctx, "order", order.ID, audit.ActionReserve, map[string]any{
		"number":     order.Number,
		"state":      string(res.State()),
		"policy":     string(policy),
		"shortfalls": len(shortfalls),
	}); err != nil {
		logger.Warn(ctx, "audit record failed", "order_number", order.Number, "error", err)
	}

	return order, result, nil
}

// GetByID retrieves an order with its lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// List retrieves orders with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	return s.repo.List(ctx, filter)
}

// UpdateStatus moves an order along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, orderID id.ID, status Status) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status == StatusCancelled || order.Status == StatusDelivered {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			fmt.Sprintf("order in status %s cannot change", order.Status))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	if err := s.audit.Record(ctx, "order", orderID, audit.ActionUpdate, map[string]any{
		"status": map[string]any{"old": string(order.Status), "new": string(status)},
	}); err != nil {
		logger.Warn(ctx, "audit record failed", "order_id", orderID, "error", err)
	}
	return nil
}
