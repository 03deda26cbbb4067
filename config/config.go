// Package config describes how a rover's motors are wired.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/roverworks/roverdrive/motor/l298n"
)

// A Config binds a board model to the two motor channels of a
// differential-drive rover.
type Config struct {
	Board string       `json:"board"`
	Left  l298n.Config `json:"left"`
	Right l298n.Config `json:"right"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate() error {
	if cfg.Board == "" {
		return utils.NewConfigValidationFieldRequiredError("", "board")
	}
	if err := cfg.Left.Validate("left"); err != nil {
		return err
	}
	return cfg.Right.Validate("right")
}

// Read loads and validates a config from the given JSON file.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config file %q", path)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config file %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the reference rover wiring: an L298N on a Raspberry Pi with
// the left channel on BCM 19/13/26 and the right channel on BCM 21/20/16,
// pulsed at 50 Hz.
func Default() *Config {
	return &Config{
		Board: "fake",
		Left: l298n.Config{
			Name:    "left_motor",
			Pins:    l298n.PinConfig{In1: "19", In2: "13", En: "26"},
			PWMFreq: l298n.DefaultPWMFreq,
		},
		Right: l298n.Config{
			Name:    "right_motor",
			Pins:    l298n.PinConfig{In1: "21", In2: "20", En: "16"},
			PWMFreq: l298n.DefaultPWMFreq,
		},
	}
}
