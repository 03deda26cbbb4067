package board

import (
	"context"
	"sync"

	"github.com/edaniels/golog"
)

// init registers a fake board.
func init() {
	RegisterBoard("fake", func(logger golog.Logger) (GPIO, error) {
		return NewFakeGPIO("fake", logger), nil
	})
}

// A FakeGPIO records pin state in memory in order to implement GPIO.
type FakeGPIO struct {
	Name string

	// GPIOErr, when set, is returned by every pin operation.
	GPIOErr error

	mu         sync.Mutex
	pins       map[string]bool
	pwm        map[string]byte
	pwmFreq    map[string]uint
	closeCount int
	logger     golog.Logger
}

// NewFakeGPIO returns a new fake board with all pins low.
func NewFakeGPIO(name string, logger golog.Logger) *FakeGPIO {
	return &FakeGPIO{
		Name:    name,
		pins:    map[string]bool{},
		pwm:     map[string]byte{},
		pwmFreq: map[string]uint{},
		logger:  logger,
	}
}

// GPIOSet sets the given pin high or low.
func (b *FakeGPIO) GPIOSet(ctx context.Context, pin string, high bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GPIOErr != nil {
		return b.GPIOErr
	}
	b.pins[pin] = high
	return nil
}

// PWMSet sets the duty cycle of the given pin.
func (b *FakeGPIO) PWMSet(ctx context.Context, pin string, dutyCycle byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GPIOErr != nil {
		return b.GPIOErr
	}
	b.pwm[pin] = dutyCycle
	return nil
}

// PWMSetFreq sets the PWM frequency of the given pin.
func (b *FakeGPIO) PWMSetFreq(ctx context.Context, pin string, freqHz uint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GPIOErr != nil {
		return b.GPIOErr
	}
	b.pwmFreq[pin] = freqHz
	return nil
}

// GPIO returns the recorded level of the given pin.
func (b *FakeGPIO) GPIO(pin string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pins[pin]
}

// PWM returns the recorded duty cycle of the given pin.
func (b *FakeGPIO) PWM(pin string) byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pwm[pin]
}

// PWMFreq returns the recorded PWM frequency of the given pin.
func (b *FakeGPIO) PWMFreq(pin string) uint {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pwmFreq[pin]
}

// Close does nothing but count.
func (b *FakeGPIO) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeCount++
	return nil
}

// CloseCount returns how many times Close has been called.
func (b *FakeGPIO) CloseCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closeCount
}
