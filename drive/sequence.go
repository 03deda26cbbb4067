package drive

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Ramp bounds for the final test sequence step, in duty-cycle percent.
const (
	rampStartPct = 15
	rampEndPct   = 40
)

// RunTestSequence executes the fixed motor test choreography: forward,
// backward, a turn each way, then a speed ramp. Any actuation failure
// triggers the emergency brake and halts the remaining choreography.
func (c *Controller) RunTestSequence(ctx context.Context) error {
	c.logger.Info("starting motor test sequence")

	steps := []struct {
		name string
		run  func(ctx context.Context) error
	}{
		{"forward", func(ctx context.Context) error { return c.Forward(ctx, 20, 3*time.Second) }},
		{"backward", func(ctx context.Context) error { return c.Backward(ctx, 20, 3*time.Second) }},
		{"turn left", func(ctx context.Context) error { return c.TurnLeft(ctx, 25, 2*time.Second) }},
		{"turn right", func(ctx context.Context) error { return c.TurnRight(ctx, 25, 2*time.Second) }},
	}
	for _, step := range steps {
		c.logger.Infof("test step: %s", step.name)
		if err := step.run(ctx); err != nil {
			return c.failSafe(ctx, errors.Wrapf(err, "test step %q failed", step.name))
		}
		if !c.waitFor(ctx, time.Second) {
			return multierr.Combine(ctx.Err(), c.StopAll(stopContext(ctx)))
		}
	}

	c.logger.Infof("test step: speed ramp %d%% to %d%%", rampStartPct, rampEndPct)
	for speed := float64(rampStartPct); speed <= rampEndPct; speed += SpeedStep {
		if err := c.Forward(ctx, speed, 0); err != nil {
			return c.failSafe(ctx, errors.Wrapf(err, "speed ramp failed at %.0f%%", speed))
		}
		if !c.waitFor(ctx, time.Second) {
			return multierr.Combine(ctx.Err(), c.StopAll(stopContext(ctx)))
		}
	}
	if err := c.StopAll(ctx); err != nil {
		return c.failSafe(ctx, errors.Wrap(err, "stop after speed ramp failed"))
	}

	c.logger.Info("test sequence complete")
	return nil
}

// failSafe escalates an actuation failure to an emergency brake and reports
// the original failure. Cancellation is not a motor fault and gets a stop
// instead.
func (c *Controller) failSafe(ctx context.Context, cause error) error {
	if ctx.Err() != nil {
		return multierr.Combine(cause, c.StopAll(stopContext(ctx)))
	}
	if err := c.BrakeAll(ctx); err != nil {
		c.logger.Errorw("emergency brake failed", "error", err)
	}
	return cause
}
