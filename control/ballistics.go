package control

import "math"

const metersPerInch = 0.0254

// Ballistics turns a target distance into a shooter wheel command using
// projectile motion from a fixed launch angle and height.
type Ballistics struct {
	cfg         ShooterConfig
	maxVelocity float64
}

// NewBallistics creates the shooter model and caches the velocity needed for
// the maximum supported range
func NewBallistics(cfg ShooterConfig) *Ballistics {
	b := &Ballistics{cfg: cfg}
	b.maxVelocity = b.InitialVelocity(cfg.MaxRangeM)
	return b
}

// InitialVelocity returns the launch speed (m/s) needed to land a ball at
// rangeM meters, corrected for wheel friction:
//
//	v = sqrt(r^2*g / (r*sin(2a) + 2h*cos^2(a))) * (1 + friction)
func (b *Ballistics) InitialVelocity(rangeM float64) float64 {
	angle := b.cfg.AngleDeg * math.Pi / 180

	n := rangeM * rangeM * b.cfg.Gravity
	d := rangeM*math.Sin(2*angle) + 2*b.cfg.HeightM*math.Pow(math.Cos(angle), 2)

	velocity := math.Sqrt(n / d)
	return velocity * (1 + b.cfg.Friction)
}

// Normalize converts a range reading in inches into a [0, 1] motor command
func (b *Ballistics) Normalize(rangeInches float64) float64 {
	if rangeInches <= 0 || b.maxVelocity <= 0 {
		return 0
	}
	output := b.InitialVelocity(rangeInches*metersPerInch) / b.maxVelocity
	return math.Min(output, 1)
}
