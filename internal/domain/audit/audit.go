// Package audit defines the domain-side contract for change logging.
package audit

import (
	"context"

	"fornada/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionReserve Action = "reserve"
	ActionTopUp   Action = "top_up"
)

// Recorder persists audit records. Implemented by the storage layer.
type Recorder interface {
	// Record logs a change for the given entity. The changes map holds
	// old/new pairs per field; it may be nil for lifecycle-only events.
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// Noop discards all records. Used in tests and when auditing is disabled.
type Noop struct{}

func (Noop) Record(context.Context, string, id.ID, Action, map[string]any) error { return nil }
