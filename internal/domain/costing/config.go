// Package costing turns recipes into costs, suggested prices and
// producible-unit estimates.
package costing

import (
	"fornada/internal/core/types"
)

// Config holds pricing parameters.
type Config struct {
	// TargetCostRatio is the share of the selling price the total cost
	// should represent. The suggested price is cost divided by this
	// ratio, so 0.4 yields a 60% margin.
	TargetCostRatio float64

	// DefaultHourlyLaborRate values preparation time on products that
	// do not set their own rate.
	DefaultHourlyLaborRate types.Money
}

// DefaultConfig returns the standard pricing parameters.
func DefaultConfig() Config {
	return Config{
		TargetCostRatio:        0.4,
		DefaultHourlyLaborRate: types.ZeroMoney(),
	}
}
