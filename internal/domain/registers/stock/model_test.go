package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"fornada/internal/core/id"
)

func TestMovement_SignedQuantity(t *testing.T) {
	in := NewMovement(id.New(), DirectionIn, 500, "purchase")
	assert.Equal(t, 500.0, in.SignedQuantity())

	out := NewMovement(id.New(), DirectionOut, 200, "order")
	assert.Equal(t, -200.0, out.SignedQuantity())
}

func TestMovement_Validate(t *testing.T) {
	ctx := context.Background()

	m := NewMovement(id.New(), DirectionIn, 100, "purchase")
	assert.NoError(t, m.Validate(ctx))

	m.Quantity = 0
	assert.Error(t, m.Validate(ctx), "zero quantity must be rejected")

	m.Quantity = -5
	assert.Error(t, m.Validate(ctx), "negative quantity must be rejected")

	m = NewMovement(id.New(), Direction("sideways"), 10, "typo")
	assert.Error(t, m.Validate(ctx))

	m = NewMovement(id.Nil(), DirectionIn, 10, "no ingredient")
	assert.Error(t, m.Validate(ctx))
}
