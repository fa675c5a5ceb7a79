package dto

import (
	"time"

	"fornada/internal/core/id"
	"fornada/internal/domain/registers/stock"
)

// --- Request DTOs ---

// MovementRequest is one manual stock movement.
type MovementRequest struct {
	IngredientID string          `json:"ingredientId" binding:"required"`
	Direction    stock.Direction `json:"direction" binding:"required"`
	Quantity     float64         `json:"quantity" binding:"required"`
	Reason       string          `json:"reason"`
}

// RecordMovementsRequest records a batch of manual movements.
type RecordMovementsRequest struct {
	Movements []MovementRequest `json:"movements" binding:"required"`
}

// ToMovements converts the request to domain movements.
func (r *RecordMovementsRequest) ToMovements() ([]stock.Movement, error) {
	movements := make([]stock.Movement, 0, len(r.Movements))
	for _, m := range r.Movements {
		ingredientID, err := id.Parse(m.IngredientID)
		if err != nil {
			return nil, err
		}
		reason := m.Reason
		if reason == "" {
			reason = "manual adjustment"
		}
		movements = append(movements, stock.NewMovement(ingredientID, m.Direction, m.Quantity, reason))
	}
	return movements, nil
}

// --- Response DTOs ---

// MovementResponse is one stock movement in API responses.
type MovementResponse struct {
	LineID       string          `json:"lineId"`
	IngredientID string          `json:"ingredientId"`
	Direction    stock.Direction `json:"direction"`
	Quantity     float64         `json:"quantity"`
	Reason       string          `json:"reason"`
	RecorderID   *string         `json:"recorderId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// FromMovement creates response DTO from a domain movement.
func FromMovement(m stock.Movement) MovementResponse {
	resp := MovementResponse{
		LineID:       m.LineID.String(),
		IngredientID: m.IngredientID.String(),
		Direction:    m.Direction,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt,
	}
	if m.RecorderID != nil {
		s := m.RecorderID.String()
		resp.RecorderID = &s
	}
	return resp
}

// FromMovements maps a slice of movements.
func FromMovements(movements []stock.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, FromMovement(m))
	}
	return out
}
