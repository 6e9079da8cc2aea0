package control

import "github.com/pkg/errors"

// KartToOmniRatio equalizes tangential speed between the 11" go-kart wheels
// and the 7.9" omni wheel, which share the same gearbox output speed.
const KartToOmniRatio = 11 / 7.9

// DriveConfig holds drivetrain mixing parameters
type DriveConfig struct {
	WheelRatio        float64 `json:"wheel_ratio"`        // Applied to the forward axis before mixing
	SensitivityDerate float64 `json:"sensitivity_derate"` // Scales the raw sensitivity axis
	Squared           bool    `json:"squared"`            // Signed-square both axes before mixing
	SecondaryScale    float64 `json:"secondary_scale"`    // Joystick B override scale
	SlowScale         float64 `json:"slow_scale"`         // Joystick A slow-axis scale
	SlowDriveEnabled  bool    `json:"slow_drive_enabled"` // Let joystick A's slow axes take over
}

// DefaultDriveConfig returns the competition drivetrain tuning
func DefaultDriveConfig() DriveConfig {
	return DriveConfig{
		WheelRatio:        KartToOmniRatio,
		SensitivityDerate: 0.75,
		Squared:           true,
		SecondaryScale:    0.8,
		SlowScale:         0.6,
		SlowDriveEnabled:  true,
	}
}

// Validate checks the drive configuration ranges
func (c DriveConfig) Validate() error {
	if c.WheelRatio <= 0 {
		return errors.Errorf("invalid wheel_ratio: %f", c.WheelRatio)
	}
	if c.SensitivityDerate < 0 || c.SensitivityDerate > 1 {
		return errors.Errorf("invalid sensitivity_derate: %f", c.SensitivityDerate)
	}
	if c.SecondaryScale < 0 || c.SecondaryScale > 1 {
		return errors.Errorf("invalid secondary_scale: %f", c.SecondaryScale)
	}
	if c.SlowScale < 0 || c.SlowScale > 1 {
		return errors.Errorf("invalid slow_scale: %f", c.SlowScale)
	}
	return nil
}

// ShooterConfig holds the projectile-motion constants (metric units)
type ShooterConfig struct {
	AngleDeg  float64 `json:"angle_deg"`
	HeightM   float64 `json:"height_m"`
	Gravity   float64 `json:"gravity"`
	MaxRangeM float64 `json:"max_range_m"`
	Friction  float64 `json:"friction"`
}

// DefaultShooterConfig returns the shooter geometry of the competition robot
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		AngleDeg:  62.00,
		HeightM:   2.050,
		Gravity:   9.807,
		MaxRangeM: 1.958,
		Friction:  0.470,
	}
}

// Validate checks that the ballistic formula stays defined over (0, MaxRangeM]
func (c ShooterConfig) Validate() error {
	if c.AngleDeg <= 0 || c.AngleDeg >= 90 {
		return errors.Errorf("invalid angle_deg: %f", c.AngleDeg)
	}
	if c.HeightM < 0 {
		return errors.Errorf("invalid height_m: %f", c.HeightM)
	}
	if c.Gravity <= 0 {
		return errors.Errorf("invalid gravity: %f", c.Gravity)
	}
	if c.MaxRangeM <= 0 {
		return errors.Errorf("invalid max_range_m: %f", c.MaxRangeM)
	}
	if c.Friction < 0 {
		return errors.Errorf("invalid friction: %f", c.Friction)
	}
	return nil
}
