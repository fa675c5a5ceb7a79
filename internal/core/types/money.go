// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
//
// Quantities, in contrast, are plain float64 everywhere in this codebase:
// unit conversion is defined in IEEE double terms and stock levels are
// signed reals, so fixed-point scaling would only change the semantics.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// Prefer NewMoneyFromString where the exact value matters.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroMoney returns the zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// MoneyFromMinutes converts a labor duration in minutes and an hourly rate
// into a cost. Used by recipe costing.
func MoneyFromMinutes(minutes float64, hourlyRate Money) Money {
	return hourlyRate.Mul(decimal.NewFromFloat(minutes)).Div(decimal.NewFromInt(60))
}
