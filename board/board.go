// Package board abstracts the GPIO hardware a robot's motor drivers are
// wired to.
package board

import "context"

// A GPIO board exposes pin-level control. Pins are addressed by their
// board-specific names (BCM numbers on a Raspberry Pi).
type GPIO interface {
	// GPIOSet sets the given pin high or low.
	GPIOSet(ctx context.Context, pin string, high bool) error

	// PWMSet sets the duty cycle of the given pin; 0 is fully off, 255 fully on.
	PWMSet(ctx context.Context, pin string, dutyCycle byte) error

	// PWMSetFreq sets the PWM frequency in Hz of the given pin.
	PWMSetFreq(ctx context.Context, pin string, freqHz uint) error

	// Close releases the underlying hardware resources.
	Close() error
}
