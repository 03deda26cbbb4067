// Package motor defines the per-side drive port of a differential-drive
// robot: a single motor behind an H-bridge that can spin either way at a
// duty-cycle percentage, coast, or actively brake.
package motor

import (
	"context"
	"math"
)

// A Motor drives one side of the robot. Power is a duty-cycle percentage in
// [0, 100]. Implementations clamp out-of-range values.
type Motor interface {
	// Forward spins the motor forward at the given power percentage.
	Forward(ctx context.Context, powerPct float64) error

	// Backward spins the motor backward at the given power percentage.
	Backward(ctx context.Context, powerPct float64) error

	// Stop removes drive power; the motor coasts.
	Stop(ctx context.Context) error

	// Brake actively resists motion at the given intensity percentage.
	Brake(ctx context.Context, powerPct float64) error

	// Close releases the motor's underlying hardware resources. It is safe
	// to call more than once.
	Close(ctx context.Context) error

	// Name returns the motor's identity label.
	Name() string
}

// ClampPercent clamps a power percentage to [0, 100].
func ClampPercent(pct float64) float64 {
	return math.Max(0, math.Min(pct, 100))
}
