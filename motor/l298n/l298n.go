// Package l298n implements a motor driven by one channel of an L298N
// H-bridge: two direction pins (IN1/IN2) and a PWM enable pin (EN).
package l298n

import (
	"context"
	"math"
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/roverworks/roverdrive/board"
	"github.com/roverworks/roverdrive/motor"
)

// DefaultPWMFreq is the pulse frequency used when the config does not set one.
const DefaultPWMFreq = 50

// PinConfig defines how a motor channel is wired to the board.
type PinConfig struct {
	In1 string `json:"in1"`
	In2 string `json:"in2"`
	En  string `json:"en"`
}

// Config describes the configuration of one motor channel.
type Config struct {
	Name        string    `json:"name"`
	Pins        PinConfig `json:"pins"`
	PWMFreq     uint      `json:"pwm_freq,omitempty"`
	MaxPowerPct float64   `json:"max_power_pct,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if cfg.Pins.In1 == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "pins.in1")
	}
	if cfg.Pins.In2 == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "pins.in2")
	}
	if cfg.Pins.En == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "pins.en")
	}
	if cfg.MaxPowerPct < 0 || cfg.MaxPowerPct > 100 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("max_power_pct must be between 0 and 100, got %v", cfg.MaxPowerPct))
	}
	return nil
}

// NewMotor constructs a new motor on the given board using the given
// configuration. The pin bindings and pulse frequency are immutable for the
// life of the motor.
func NewMotor(b board.GPIO, cfg Config, logger golog.Logger) (*Motor, error) {
	if err := cfg.Validate(cfg.Name); err != nil {
		return nil, err
	}
	if cfg.PWMFreq == 0 {
		cfg.PWMFreq = DefaultPWMFreq
	}
	if cfg.MaxPowerPct == 0 {
		cfg.MaxPowerPct = 100
	}
	return &Motor{
		board:       b,
		name:        cfg.Name,
		in1:         cfg.Pins.In1,
		in2:         cfg.Pins.In2,
		en:          cfg.Pins.En,
		pwmFreq:     cfg.PWMFreq,
		maxPowerPct: cfg.MaxPowerPct,
		logger:      logger,
	}, nil
}

var _ = motor.Motor(&Motor{})

// A Motor is one L298N channel on a GPIO board.
type Motor struct {
	board       board.GPIO
	name        string
	in1, in2    string
	en          string
	pwmFreq     uint
	maxPowerPct float64
	logger      golog.Logger

	closeOnce sync.Once
	closed    bool
}

// Name returns the motor's identity label.
func (m *Motor) Name() string {
	return m.name
}

// Forward drives IN1 high and IN2 low, then applies the duty cycle.
func (m *Motor) Forward(ctx context.Context, powerPct float64) error {
	if m.closed {
		return motor.NewReleasedError(m.name)
	}
	return multierr.Combine(
		m.board.GPIOSet(ctx, m.in1, true),
		m.board.GPIOSet(ctx, m.in2, false),
		m.setPower(ctx, powerPct), // must be last so direction is set before drive
	)
}

// Backward drives IN1 low and IN2 high, then applies the duty cycle.
func (m *Motor) Backward(ctx context.Context, powerPct float64) error {
	if m.closed {
		return motor.NewReleasedError(m.name)
	}
	return multierr.Combine(
		m.board.GPIOSet(ctx, m.in1, false),
		m.board.GPIOSet(ctx, m.in2, true),
		m.setPower(ctx, powerPct),
	)
}

// Stop removes drive power; the motor coasts.
func (m *Motor) Stop(ctx context.Context) error {
	if m.closed {
		return motor.NewReleasedError(m.name)
	}
	return m.allLow(ctx)
}

// Brake sets both direction pins high so the bridge shorts the windings,
// actively resisting motion at the given intensity.
func (m *Motor) Brake(ctx context.Context, powerPct float64) error {
	if m.closed {
		return motor.NewReleasedError(m.name)
	}
	return multierr.Combine(
		m.board.GPIOSet(ctx, m.in1, true),
		m.board.GPIOSet(ctx, m.in2, true),
		m.setPower(ctx, powerPct),
	)
}

// Close drives all pins low and marks the motor released. Safe to call more
// than once; only the first call touches the hardware.
func (m *Motor) Close(ctx context.Context) (err error) {
	m.closeOnce.Do(func() {
		err = m.allLow(ctx)
		m.closed = true
	})
	return
}

func (m *Motor) allLow(ctx context.Context) error {
	return multierr.Combine(
		m.board.GPIOSet(ctx, m.in1, false),
		m.board.GPIOSet(ctx, m.in2, false),
		m.board.PWMSet(ctx, m.en, 0),
	)
}

func (m *Motor) setPower(ctx context.Context, powerPct float64) error {
	powerPct = motor.ClampPercent(powerPct)
	if powerPct > m.maxPowerPct {
		powerPct = m.maxPowerPct
	}
	return multierr.Combine(
		m.board.PWMSetFreq(ctx, m.en, m.pwmFreq),
		m.board.PWMSet(ctx, m.en, dutyCycle(powerPct)),
	)
}

// dutyCycle scales a percentage to the board's 8-bit duty-cycle range.
func dutyCycle(powerPct float64) byte {
	return byte(math.Round(255 * powerPct / 100))
}
