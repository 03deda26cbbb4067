package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/roverworks/roverdrive/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rover.json")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Left.Pins.In1, test.ShouldEqual, "19")
	test.That(t, cfg.Right.Pins.In1, test.ShouldEqual, "21")
	test.That(t, cfg.Left.PWMFreq, test.ShouldEqual, uint(50))
}

func TestRead(t *testing.T) {
	path := writeConfig(t, `{
		"board": "fake",
		"left": {"name": "left_motor", "pins": {"in1": "19", "in2": "13", "en": "26"}},
		"right": {"name": "right_motor", "pins": {"in1": "21", "in2": "20", "en": "16"}}
	}`)

	cfg, err := config.Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Board, test.ShouldEqual, "fake")
	test.That(t, cfg.Left.Name, test.ShouldEqual, "left_motor")
	test.That(t, cfg.Right.Pins.En, test.ShouldEqual, "16")
}

func TestReadRejectsBadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Read(filepath.Join(t.TempDir(), "nope.json"))
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := config.Read(writeConfig(t, "{"))
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("missing board", func(t *testing.T) {
		_, err := config.Read(writeConfig(t, `{
			"left": {"name": "left_motor", "pins": {"in1": "19", "in2": "13", "en": "26"}},
			"right": {"name": "right_motor", "pins": {"in1": "21", "in2": "20", "en": "16"}}
		}`))
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("missing motor pin", func(t *testing.T) {
		_, err := config.Read(writeConfig(t, `{
			"board": "fake",
			"left": {"name": "left_motor", "pins": {"in1": "19", "in2": "13"}},
			"right": {"name": "right_motor", "pins": {"in1": "21", "in2": "20", "en": "16"}}
		}`))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "pins.en")
	})
}
