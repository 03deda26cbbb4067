// Package fake implements a fake motor that records what was asked of it.
package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/roverworks/roverdrive/motor"
)

// State is what a fake motor is currently doing.
type State string

// The possible fake motor states.
const (
	StateStopped  State = "stopped"
	StateForward  State = "forward"
	StateBackward State = "backward"
	StateBraking  State = "braking"
)

var _ = motor.Motor(&Motor{})

// A Motor records drive commands in memory in order to implement motor.Motor.
type Motor struct {
	mu         sync.Mutex
	name       string
	state      State
	powerPct   float64
	opLog      []string
	closeCount int
}

// NewMotor returns a new stopped fake motor.
func NewMotor(name string) *Motor {
	return &Motor{name: name, state: StateStopped}
}

// Name returns the motor's identity label.
func (m *Motor) Name() string {
	return m.name
}

// Forward records a forward command.
func (m *Motor) Forward(ctx context.Context, powerPct float64) error {
	m.record(StateForward, motor.ClampPercent(powerPct))
	return nil
}

// Backward records a backward command.
func (m *Motor) Backward(ctx context.Context, powerPct float64) error {
	m.record(StateBackward, motor.ClampPercent(powerPct))
	return nil
}

// Stop records a stop command.
func (m *Motor) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateStopped
	m.powerPct = 0
	m.opLog = append(m.opLog, "stop")
	return nil
}

// Brake records a brake command.
func (m *Motor) Brake(ctx context.Context, powerPct float64) error {
	m.record(StateBraking, motor.ClampPercent(powerPct))
	return nil
}

// Close records a release. Only the first call changes state.
func (m *Motor) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCount++
	if m.closeCount == 1 {
		m.state = StateStopped
		m.powerPct = 0
		m.opLog = append(m.opLog, "close")
	}
	return nil
}

func (m *Motor) record(state State, powerPct float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.powerPct = powerPct
	m.opLog = append(m.opLog, fmt.Sprintf("%s %v", state, powerPct))
}

// State returns the motor's current state.
func (m *Motor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// PowerPct returns the motor's current duty-cycle percentage.
func (m *Motor) PowerPct() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.powerPct
}

// OpLog returns every command issued to the motor, in order.
func (m *Motor) OpLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.opLog))
	copy(out, m.opLog)
	return out
}

// CloseCount returns how many times Close has been called.
func (m *Motor) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCount
}
