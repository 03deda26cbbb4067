// Package inject provides test doubles whose behavior can be overridden per
// function.
package inject

import (
	"context"

	"github.com/roverworks/roverdrive/motor"
)

// Motor is an injected motor. Any nil func falls through to the embedded
// Motor.
type Motor struct {
	motor.Motor
	ForwardFunc  func(ctx context.Context, powerPct float64) error
	BackwardFunc func(ctx context.Context, powerPct float64) error
	StopFunc     func(ctx context.Context) error
	BrakeFunc    func(ctx context.Context, powerPct float64) error
	CloseFunc    func(ctx context.Context) error
}

// Forward calls the injected Forward or the real version.
func (m *Motor) Forward(ctx context.Context, powerPct float64) error {
	if m.ForwardFunc == nil {
		return m.Motor.Forward(ctx, powerPct)
	}
	return m.ForwardFunc(ctx, powerPct)
}

// Backward calls the injected Backward or the real version.
func (m *Motor) Backward(ctx context.Context, powerPct float64) error {
	if m.BackwardFunc == nil {
		return m.Motor.Backward(ctx, powerPct)
	}
	return m.BackwardFunc(ctx, powerPct)
}

// Stop calls the injected Stop or the real version.
func (m *Motor) Stop(ctx context.Context) error {
	if m.StopFunc == nil {
		return m.Motor.Stop(ctx)
	}
	return m.StopFunc(ctx)
}

// Brake calls the injected Brake or the real version.
func (m *Motor) Brake(ctx context.Context, powerPct float64) error {
	if m.BrakeFunc == nil {
		return m.Motor.Brake(ctx, powerPct)
	}
	return m.BrakeFunc(ctx, powerPct)
}

// Close calls the injected Close or the real version.
func (m *Motor) Close(ctx context.Context) error {
	if m.CloseFunc == nil {
		return m.Motor.Close(ctx)
	}
	return m.CloseFunc(ctx)
}
