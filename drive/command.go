package drive

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownCommand is returned by ParseCommand for input that maps to no
// manual command.
var ErrUnknownCommand = errors.New("unknown command")

// A Command is one manual-mode maneuver request.
type Command int

// The closed set of manual commands.
const (
	CommandForward Command = iota + 1
	CommandBackward
	CommandTurnLeft
	CommandTurnRight
	CommandStop
	CommandBrake
	CommandSpeedUp
	CommandSpeedDown
	CommandQuit
)

func (cmd Command) String() string {
	switch cmd {
	case CommandForward:
		return "forward"
	case CommandBackward:
		return "backward"
	case CommandTurnLeft:
		return "turn left"
	case CommandTurnRight:
		return "turn right"
	case CommandStop:
		return "stop"
	case CommandBrake:
		return "brake"
	case CommandSpeedUp:
		return "speed up"
	case CommandSpeedDown:
		return "speed down"
	case CommandQuit:
		return "quit"
	}
	return "unknown"
}

// ParseCommand maps a single-character manual input to a Command.
func ParseCommand(input string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "w":
		return CommandForward, nil
	case "s":
		return CommandBackward, nil
	case "a":
		return CommandTurnLeft, nil
	case "d":
		return CommandTurnRight, nil
	case "x":
		return CommandStop, nil
	case "b":
		return CommandBrake, nil
	case "+":
		return CommandSpeedUp, nil
	case "-":
		return CommandSpeedDown, nil
	case "q":
		return CommandQuit, nil
	}
	return 0, errors.Wrapf(ErrUnknownCommand, "%q", input)
}

// Apply executes one manual command at the current speed setting. Directional
// commands run without a duration; the operator stops the robot explicitly.
func (c *Controller) Apply(ctx context.Context, cmd Command) error {
	switch cmd {
	case CommandForward:
		return c.Forward(ctx, c.speed, 0)
	case CommandBackward:
		return c.Backward(ctx, c.speed, 0)
	case CommandTurnLeft:
		return c.TurnLeft(ctx, c.speed, 0)
	case CommandTurnRight:
		return c.TurnRight(ctx, c.speed, 0)
	case CommandStop:
		return c.StopAll(ctx)
	case CommandBrake:
		return c.BrakeAll(ctx)
	case CommandSpeedUp:
		c.speed = math.Min(c.speed+SpeedStep, MaxSpeed)
		c.logger.Infof("speed increased to %.0f%%", c.speed)
		return nil
	case CommandSpeedDown:
		c.speed = math.Max(c.speed-SpeedStep, MinSpeed)
		c.logger.Infof("speed decreased to %.0f%%", c.speed)
		return nil
	case CommandQuit:
		return nil
	}
	return errors.Wrapf(ErrUnknownCommand, "%d", cmd)
}
