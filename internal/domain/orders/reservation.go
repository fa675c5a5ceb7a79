package orders

import (
	"context"
	"fmt"
	"sync"

	"fornada/internal/core/apperror"
	"fornada/internal/core/id"
	"fornada/internal/domain/measure"
	"fornada/internal/domain/registers/stock"
	"fornada/pkg/logger"
)

// State of a reservation workflow.
type State string

const (
	StateIdle             State = "idle"
	StateChecking         State = "checking"
	StateSufficient       State = "sufficient"
	StateAwaitingDecision State = "awaiting_decision"
	StateRestocking       State = "restocking"
	StateCommitting       State = "committing"
	StateCommitted        State = "committed"
	StateAborted          State = "aborted"
)

// Shortfall describes one ingredient the order cannot cover from stock.
type Shortfall struct {
	IngredientID id.ID        `json:"ingredientId"`
	Name         string       `json:"name"`
	Unit         measure.Unit `json:"unit"`
	Required     float64      `json:"required"`
	Available    float64      `json:"available"`
	Missing      float64      `json:"missing"`
}

// StockReader reads current stock levels. The reservation always reads
// fresh: cached entity state is never trusted for a commit decision.
type StockReader interface {
	FreshLevels(ctx context.Context, ingredientIDs []id.ID) (map[id.ID]float64, error)
}

// MovementApplier records stock movements.
type MovementApplier interface {
	RecordMovements(ctx context.Context, movements []stock.Movement) error
}

// OrderWriter persists the confirmed order.
type OrderWriter interface {
	Create(ctx context.Context, order *Order) error
}

// Reservation drives one order through the stock sufficiency workflow:
// check, then either commit, proceed despite shortfalls, top up first,
// or abort.
//
// A Reservation is single-use and not safe for concurrent method calls.
type Reservation struct {
	order        *Order
	requirements []Requirement

	stocks    StockReader
	movements MovementApplier
	writer    OrderWriter

	state      State
	checked    bool
	shortfalls []Shortfall
}

// NewReservation creates a reservation for the given order.
func NewReservation(order *Order, requirements []Requirement, stocks StockReader, movements MovementApplier, writer OrderWriter) *Reservation {
	return &Reservation{
		order:        order,
		requirements: requirements,
		stocks:       stocks,
		movements:    movements,
		writer:       writer,
		state:        StateIdle,
	}
}

// State returns the current workflow state.
func (r *Reservation) State() State { return r.state }

// Shortfalls returns the shortfalls found by Check.
func (r *Reservation) Shortfalls() []Shortfall { return r.shortfalls }

func (r *Reservation) invalidTransition(op string) error {
	return apperror.NewBusinessRule(apperror.CodeBusinessRule,
		fmt.Sprintf("cannot %s in state %s", op, r.state)).
		WithDetail("state", string(r.state))
}

// Check reads fresh stock levels and compares them to the order's
// requirements. Each reservation checks exactly once; the decision
// that follows acts on that snapshot.
//
// A failed stock read aborts the workflow: an unverifiable level is
// never treated as sufficient.
func (r *Reservation) Check(ctx context.Context) (State, []Shortfall, error) {
	if r.state != StateIdle || r.checked {
		return r.state, nil, r.invalidTransition("check")
	}
	r.state = StateChecking
	r.checked = true

	ids := make([]id.ID, 0, len(r.requirements))
	for _, req := range r.requirements {
		ids = append(ids, req.IngredientID)
	}

	levels, err := r.stocks.FreshLevels(ctx, ids)
	if err != nil {
		r.state = StateAborted
		return r.state, nil, apperror.NewStockUnverified(err)
	}

	var shortfalls []Shortfall
	for _, req := range r.requirements {
		available := levels[req.IngredientID]
		if available < req.Quantity {
			shortfalls = append(shortfalls, Shortfall{
				IngredientID: req.IngredientID,
				Name:         req.Name,
				Unit:         req.Unit,
				Required:     req.Quantity,
				Available:    available,
				Missing:      req.Quantity - available,
			})
		}
	}

	r.shortfalls = shortfalls
	if len(shortfalls) == 0 {
		r.state = StateSufficient
	} else {
		r.state = StateAwaitingDecision
	}
	return r.state, shortfalls, nil
}

// Commit persists the confirmed order. Stock is not deducted here:
// consumption is booked at production time, outside this workflow.
// Valid from Sufficient; to commit with known shortfalls use
// ProceedAnyway.
func (r *Reservation) Commit(ctx context.Context) error {
	if r.state != StateSufficient {
		return r.invalidTransition("commit")
	}
	return r.commit(ctx)
}

// ProceedAnyway commits despite known shortfalls. The shortage stays on
// record for production to deal with; no stock is adjusted.
func (r *Reservation) ProceedAnyway(ctx context.Context) error {
	if r.state != StateAwaitingDecision {
		return r.invalidTransition("proceed")
	}
	return r.commit(ctx)
}

// TopUpAndCommit records incoming movements covering each shortfall,
// then commits. Top-ups run concurrently and are best effort: a partial
// success still commits (the uncovered shortfalls remain), but if every
// top-up fails the workflow returns to awaiting a decision.
func (r *Reservation) TopUpAndCommit(ctx context.Context) error {
	if r.state != StateAwaitingDecision {
		return r.invalidTransition("top up")
	}
	r.state = StateRestocking

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		applied   []id.ID
	)

	for _, sf := range r.shortfalls {
		wg.Add(1)
		go func(sf Shortfall) {
			defer wg.Done()

			m := stock.NewMovement(sf.IngredientID, stock.DirectionIn, sf.Missing,
				fmt.Sprintf("top-up for %s shortfall on order %s", sf.Name, r.order.Number))
			oid := r.order.ID
			m.RecorderID = &oid

			if err := r.movements.RecordMovements(ctx, []stock.Movement{m}); err != nil {
				logger.Warn(ctx, "top-up failed",
					"ingredient_id", sf.IngredientID,
					"missing", sf.Missing,
					"error", err,
				)
				return
			}

			mu.Lock()
			succeeded++
			applied = append(applied, m.LineID)
			mu.Unlock()
		}(sf)
	}
	wg.Wait()

	if succeeded == 0 {
		r.state = StateAwaitingDecision
		return apperror.NewTopUpFailed()
	}

	if err := r.commit(ctx); err != nil {
		// The top-up movements are already durable. They describe real
		// purchases, so they stay; the order itself did not go through.
		logger.Error(ctx, "commit failed after top-ups were applied; stock movements are NOT rolled back",
			"order_number", r.order.Number,
			"applied_movement_ids", applied,
			"error", err,
		)
		return err
	}
	return nil
}

// Abort ends the workflow without touching stock.
func (r *Reservation) Abort() error {
	switch r.state {
	case StateCommitted:
		return r.invalidTransition("abort")
	}
	r.state = StateAborted
	return nil
}

func (r *Reservation) commit(ctx context.Context) error {
	r.state = StateCommitting

	r.order.Status = StatusConfirmed
	if err := r.writer.Create(ctx, r.order); err != nil {
		r.state = StateAborted
		return fmt.Errorf("create order: %w", err)
	}

	r.state = StateCommitted
	return nil
}
