package l298n_test

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/roverworks/roverdrive/board"
	"github.com/roverworks/roverdrive/motor/l298n"
)

func testConfig() l298n.Config {
	return l298n.Config{
		Name: "left_motor",
		Pins: l298n.PinConfig{In1: "19", In2: "13", En: "26"},
	}
}

func newTestMotor(t *testing.T, cfg l298n.Config) (*l298n.Motor, *board.FakeGPIO) {
	t.Helper()
	logger := golog.NewTestLogger(t)
	b := board.NewFakeGPIO("fake", logger)
	m, err := l298n.NewMotor(b, cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	return m, b
}

func TestForward(t *testing.T) {
	ctx := context.Background()
	m, b := newTestMotor(t, testConfig())

	test.That(t, m.Forward(ctx, 20), test.ShouldBeNil)
	test.That(t, b.GPIO("19"), test.ShouldBeTrue)
	test.That(t, b.GPIO("13"), test.ShouldBeFalse)
	test.That(t, b.PWM("26"), test.ShouldEqual, byte(51)) // 20% of 255
	test.That(t, b.PWMFreq("26"), test.ShouldEqual, uint(50))
}

func TestBackward(t *testing.T) {
	ctx := context.Background()
	m, b := newTestMotor(t, testConfig())

	test.That(t, m.Backward(ctx, 40), test.ShouldBeNil)
	test.That(t, b.GPIO("19"), test.ShouldBeFalse)
	test.That(t, b.GPIO("13"), test.ShouldBeTrue)
	test.That(t, b.PWM("26"), test.ShouldEqual, byte(102))
}

func TestStopCoasts(t *testing.T) {
	ctx := context.Background()
	m, b := newTestMotor(t, testConfig())

	test.That(t, m.Forward(ctx, 50), test.ShouldBeNil)
	test.That(t, m.Stop(ctx), test.ShouldBeNil)
	test.That(t, b.GPIO("19"), test.ShouldBeFalse)
	test.That(t, b.GPIO("13"), test.ShouldBeFalse)
	test.That(t, b.PWM("26"), test.ShouldEqual, byte(0))
}

func TestBrakeShortsWindings(t *testing.T) {
	ctx := context.Background()
	m, b := newTestMotor(t, testConfig())

	test.That(t, m.Brake(ctx, 100), test.ShouldBeNil)
	test.That(t, b.GPIO("19"), test.ShouldBeTrue)
	test.That(t, b.GPIO("13"), test.ShouldBeTrue)
	test.That(t, b.PWM("26"), test.ShouldEqual, byte(255))
}

func TestPowerClamping(t *testing.T) {
	ctx := context.Background()
	m, b := newTestMotor(t, testConfig())

	test.That(t, m.Forward(ctx, 150), test.ShouldBeNil)
	test.That(t, b.PWM("26"), test.ShouldEqual, byte(255))

	test.That(t, m.Forward(ctx, -10), test.ShouldBeNil)
	test.That(t, b.PWM("26"), test.ShouldEqual, byte(0))
}

func TestMaxPowerPct(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxPowerPct = 50
	m, b := newTestMotor(t, cfg)

	test.That(t, m.Forward(ctx, 100), test.ShouldBeNil)
	test.That(t, b.PWM("26"), test.ShouldEqual, byte(128))
}

func TestCloseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, b := newTestMotor(t, testConfig())

	test.That(t, m.Forward(ctx, 20), test.ShouldBeNil)
	test.That(t, m.Close(ctx), test.ShouldBeNil)
	test.That(t, b.GPIO("19"), test.ShouldBeFalse)
	test.That(t, b.PWM("26"), test.ShouldEqual, byte(0))

	test.That(t, m.Close(ctx), test.ShouldBeNil)

	err := m.Forward(ctx, 20)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "released")
}

func TestBoardFaultSurfaces(t *testing.T) {
	ctx := context.Background()
	m, b := newTestMotor(t, testConfig())

	b.GPIOErr = errors.New("bus fault")
	err := m.Forward(ctx, 20)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bus fault")
}

func TestConfigValidate(t *testing.T) {
	logger := golog.NewTestLogger(t)
	b := board.NewFakeGPIO("fake", logger)

	for _, tc := range []struct {
		name   string
		mutate func(cfg *l298n.Config)
	}{
		{"missing name", func(cfg *l298n.Config) { cfg.Name = "" }},
		{"missing in1", func(cfg *l298n.Config) { cfg.Pins.In1 = "" }},
		{"missing in2", func(cfg *l298n.Config) { cfg.Pins.In2 = "" }},
		{"missing en", func(cfg *l298n.Config) { cfg.Pins.En = "" }},
		{"bad max power", func(cfg *l298n.Config) { cfg.MaxPowerPct = 150 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			_, err := l298n.NewMotor(b, cfg, logger)
			test.That(t, err, test.ShouldNotBeNil)
		})
	}
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	m, b := newTestMotor(t, testConfig())

	test.That(t, m.Name(), test.ShouldEqual, "left_motor")
	test.That(t, m.Forward(ctx, 10), test.ShouldBeNil)
	test.That(t, b.PWMFreq("26"), test.ShouldEqual, uint(l298n.DefaultPWMFreq))
}
