package drive

import (
	"context"
	"fmt"

	"github.com/abiosoft/ishell/v2"
	"go.viam.com/utils"
)

// RunManualShell runs the interactive manual control loop on standard input
// until the operator quits or the context is cancelled.
func (c *Controller) RunManualShell(ctx context.Context) error {
	return c.runManualShell(ctx, ishell.New())
}

// runManualShell drives the given shell. The robot is always stopped on the
// way out, whether the loop ends by quit, end of input, or cancellation.
func (c *Controller) runManualShell(ctx context.Context, shell *ishell.Shell) error {
	c.logger.Info("entering manual control mode")

	shell.Println("manual control commands:")
	shell.Println("  w - forward      s - backward")
	shell.Println("  a - turn left    d - turn right")
	shell.Println("  x - stop         b - brake")
	shell.Println("  + - speed up     - - slow down")
	shell.Println("  q - quit")

	prompt := func() string {
		return fmt.Sprintf("[%.0f%%] >>> ", c.speed)
	}
	shell.SetPrompt(prompt())

	bind := func(name, help string, cmd Command) {
		shell.AddCmd(&ishell.Cmd{
			Name: name,
			Help: help,
			Func: func(ic *ishell.Context) {
				if err := c.Apply(ctx, cmd); err != nil {
					// the operator keeps control on an actuation failure
					ic.Err(err)
				}
				shell.SetPrompt(prompt())
			},
		})
	}
	bind("w", "drive forward", CommandForward)
	bind("s", "drive backward", CommandBackward)
	bind("a", "turn left", CommandTurnLeft)
	bind("d", "turn right", CommandTurnRight)
	bind("x", "stop both motors", CommandStop)
	bind("b", "emergency brake", CommandBrake)
	bind("+", "increase speed", CommandSpeedUp)
	bind("-", "decrease speed", CommandSpeedDown)
	shell.AddCmd(&ishell.Cmd{
		Name: "q",
		Help: "quit manual control",
		Func: func(ic *ishell.Context) {
			ic.Stop()
		},
	})
	shell.NotFound(func(ic *ishell.Context) {
		ic.Println("invalid command; use w/s/a/d/x/b/+/-/q")
	})

	shellDone := make(chan struct{})
	defer close(shellDone)
	utils.PanicCapturingGo(func() {
		select {
		case <-ctx.Done():
			shell.Stop()
		case <-shellDone:
		}
	})

	shell.Run()

	return c.StopAll(stopContext(ctx))
}
