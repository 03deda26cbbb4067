// Package drive translates high-level directional intents into paired
// commands on a differential-drive robot's two motors.
package drive

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.uber.org/multierr"

	"github.com/roverworks/roverdrive/motor"
)

// Manual speed setting bounds and adjustment step, in duty-cycle percent.
const (
	DefaultSpeed = 25
	MinSpeed     = 5
	MaxSpeed     = 100
	SpeedStep    = 5
)

// BrakePowerPct is the intensity used for the emergency brake.
const BrakePowerPct = 100

// A Controller drives the left and right motors of a differential-drive
// robot. It is not safe for concurrent use; a robot has one operator.
type Controller struct {
	left   motor.Motor
	right  motor.Motor
	logger golog.Logger
	clk    clock.Clock

	speed     float64
	closeOnce sync.Once
}

// NewController returns a controller bound to the given left and right
// motors.
func NewController(left, right motor.Motor, logger golog.Logger) *Controller {
	return &Controller{
		left:   left,
		right:  right,
		logger: logger,
		clk:    clock.New(),
		speed:  DefaultSpeed,
	}
}

// Forward commands both motors forward at the given duty-cycle percentage.
// A positive duration blocks for that long and then stops both motors.
func (c *Controller) Forward(ctx context.Context, speedPct float64, duration time.Duration) error {
	c.logger.Infof("moving forward at %.0f%% power", speedPct)
	return c.drive(ctx, duration, func(ctx context.Context) error {
		if err := c.left.Forward(ctx, speedPct); err != nil {
			return err
		}
		return c.right.Forward(ctx, speedPct)
	})
}

// Backward commands both motors backward at the given duty-cycle percentage.
func (c *Controller) Backward(ctx context.Context, speedPct float64, duration time.Duration) error {
	c.logger.Infof("moving backward at %.0f%% power", speedPct)
	return c.drive(ctx, duration, func(ctx context.Context) error {
		if err := c.left.Backward(ctx, speedPct); err != nil {
			return err
		}
		return c.right.Backward(ctx, speedPct)
	})
}

// TurnLeft spins the robot in place to the left: left motor backward, right
// motor forward, equal magnitude.
func (c *Controller) TurnLeft(ctx context.Context, speedPct float64, duration time.Duration) error {
	c.logger.Infof("turning left at %.0f%% power", speedPct)
	return c.drive(ctx, duration, func(ctx context.Context) error {
		if err := c.left.Backward(ctx, speedPct); err != nil {
			return err
		}
		return c.right.Forward(ctx, speedPct)
	})
}

// TurnRight spins the robot in place to the right: left motor forward, right
// motor backward, equal magnitude.
func (c *Controller) TurnRight(ctx context.Context, speedPct float64, duration time.Duration) error {
	c.logger.Infof("turning right at %.0f%% power", speedPct)
	return c.drive(ctx, duration, func(ctx context.Context) error {
		if err := c.left.Forward(ctx, speedPct); err != nil {
			return err
		}
		return c.right.Backward(ctx, speedPct)
	})
}

// StopAll removes drive power from both motors. Both motors are always
// attempted, even if the first fails. Safe to call from any state.
func (c *Controller) StopAll(ctx context.Context) error {
	c.logger.Info("stopping all motors")
	return multierr.Combine(
		c.left.Stop(ctx),
		c.right.Stop(ctx),
	)
}

// BrakeAll commands both motors to actively brake at full intensity. Both
// motors are always attempted. Safe to call from any state.
func (c *Controller) BrakeAll(ctx context.Context) error {
	c.logger.Warn("emergency brake activated")
	return multierr.Combine(
		c.left.Brake(ctx, BrakePowerPct),
		c.right.Brake(ctx, BrakePowerPct),
	)
}

// Speed returns the manual-mode speed setting.
func (c *Controller) Speed() float64 {
	return c.speed
}

// Close stops both motors and releases their resources. Only the first call
// does anything; release failure on one motor does not block the other.
func (c *Controller) Close(ctx context.Context) error {
	var err error
	c.closeOnce.Do(func() {
		c.logger.Info("releasing motor resources")
		err = multierr.Combine(
			c.StopAll(ctx),
			c.left.Close(ctx),
			c.right.Close(ctx),
		)
	})
	return err
}

// drive applies a paired motor command and, when durated, waits the interval
// out (or until cancellation) before stopping both motors.
func (c *Controller) drive(ctx context.Context, duration time.Duration, apply func(context.Context) error) error {
	if err := apply(ctx); err != nil {
		return err
	}
	if duration <= 0 {
		return nil
	}
	if !c.waitFor(ctx, duration) {
		return multierr.Combine(ctx.Err(), c.StopAll(stopContext(ctx)))
	}
	return c.StopAll(ctx)
}

// stopContext returns ctx for a safety stop, detaching from it when it has
// already been cancelled so the stop cannot be refused.
func stopContext(ctx context.Context) context.Context {
	if ctx.Err() != nil {
		return context.Background()
	}
	return ctx
}

// waitFor blocks for the given interval and reports whether it elapsed in
// full, false meaning the context was cancelled first.
func (c *Controller) waitFor(ctx context.Context, d time.Duration) bool {
	timer := c.clk.Timer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
