package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"frc-robot-core/robot"
)

// Run modes
const (
	ModeTeleop     = "teleop"
	ModeAutonomous = "autonomous"
	ModeMatch      = "match"
)

// Config defines a complete robot run
type Config struct {
	Meta       ConfigMeta       `json:"meta"`
	Timing     ConfigTiming     `json:"timing"`
	Robot      robot.Config     `json:"robot"`
	Autonomous ConfigAutonomous `json:"autonomous"`
}

// ConfigMeta contains run metadata
type ConfigMeta struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Mode        string `json:"mode"` // "teleop", "autonomous" or "match"
}

// ConfigTiming defines phase lengths
type ConfigTiming struct {
	AutonomousS float64 `json:"autonomous_s"`
	TeleopS     float64 `json:"teleop_s"`
	InputStaleS float64 `json:"input_stale_s"` // Operator input older than this is ignored
}

// ConfigAutonomous selects the autonomous program
type ConfigAutonomous struct {
	Program string `json:"program,omitempty"` // Menu label, e.g. "Take ball & shoot"; empty keeps the dashboard choice
}

// DefaultConfig returns a competition match that runs whatever program the
// dashboard selects
func DefaultConfig() Config {
	return Config{
		Meta: ConfigMeta{Name: "match", Mode: ModeMatch},
		Timing: ConfigTiming{
			AutonomousS: 15,
			TeleopS:     135,
			InputStaleS: 0.5,
		},
		Robot: robot.DefaultConfig(),
	}
}

// LoadConfig loads a run configuration from JSON. Fields missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read file")
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the runner cannot use
func (c Config) Validate() error {
	switch c.Meta.Mode {
	case ModeTeleop, ModeAutonomous, ModeMatch:
	default:
		return errors.Errorf("invalid mode %q (teleop, autonomous or match)", c.Meta.Mode)
	}
	if c.Timing.AutonomousS < 0 || c.Timing.TeleopS < 0 {
		return errors.Errorf("invalid phase lengths: autonomous_s=%f teleop_s=%f",
			c.Timing.AutonomousS, c.Timing.TeleopS)
	}
	if c.Timing.InputStaleS <= 0 {
		return errors.Errorf("invalid input_stale_s: %f", c.Timing.InputStaleS)
	}
	if err := c.Robot.Drive.Validate(); err != nil {
		return errors.Wrap(err, "drive")
	}
	if err := c.Robot.Shooter.Validate(); err != nil {
		return errors.Wrap(err, "shooter")
	}
	return nil
}
