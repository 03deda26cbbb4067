package drive

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/abiosoft/ishell/v2"
	"github.com/abiosoft/readline"
	"go.viam.com/test"

	"github.com/roverworks/roverdrive/motor/fake"
)

// newScriptedShell returns a shell fed by the given input instead of
// standard input.
func newScriptedShell(t *testing.T, input string) *ishell.Shell {
	t.Helper()
	return ishell.NewWithConfig(&readline.Config{
		Stdin:  io.NopCloser(strings.NewReader(input)),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
}

func TestManualShellStopsOnQuit(t *testing.T) {
	c, left, right := newTestController(t)

	err := c.runManualShell(context.Background(), newScriptedShell(t, "w\nq\n"))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, left.OpLog(), test.ShouldResemble, []string{"forward 25", "stop"})
	test.That(t, right.OpLog(), test.ShouldResemble, []string{"forward 25", "stop"})
	test.That(t, left.State(), test.ShouldEqual, fake.StateStopped)
	test.That(t, right.State(), test.ShouldEqual, fake.StateStopped)
}

func TestManualShellStopsOnEndOfInput(t *testing.T) {
	c, left, right := newTestController(t)

	// input runs out without an explicit quit
	err := c.runManualShell(context.Background(), newScriptedShell(t, "w\n"))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, left.State(), test.ShouldEqual, fake.StateStopped)
	test.That(t, right.State(), test.ShouldEqual, fake.StateStopped)
	test.That(t, left.OpLog()[len(left.OpLog())-1], test.ShouldEqual, "stop")
}

func TestManualShellIgnoresUnknownInput(t *testing.T) {
	c, left, right := newTestController(t)

	err := c.runManualShell(context.Background(), newScriptedShell(t, "z\nq\n"))
	test.That(t, err, test.ShouldBeNil)

	// only the unconditional stop on the way out
	test.That(t, left.OpLog(), test.ShouldResemble, []string{"stop"})
	test.That(t, right.OpLog(), test.ShouldResemble, []string{"stop"})
	test.That(t, c.Speed(), test.ShouldEqual, float64(DefaultSpeed))
}

func TestManualShellAdjustsSpeed(t *testing.T) {
	c, left, _ := newTestController(t)

	err := c.runManualShell(context.Background(), newScriptedShell(t, "+\n+\nw\nq\n"))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, c.Speed(), test.ShouldEqual, 35)
	test.That(t, left.OpLog(), test.ShouldResemble, []string{"forward 35", "stop"})
}
