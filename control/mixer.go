package control

import "math"

// DriveOutput contains the wheel-side commands of the drivetrain, all in [-1, 1]
type DriveOutput struct {
	Left   float64
	Right  float64
	Clutch float64 // Dual-speed transmission, follows the forward command
}

// Mixer converts forward/turn commands into tank-style left/right outputs
type Mixer struct {
	cfg DriveConfig
}

// NewMixer creates a new drive mixer with given configuration
func NewMixer(cfg DriveConfig) *Mixer {
	return &Mixer{cfg: cfg}
}

// Config returns the drive configuration in use
func (m *Mixer) Config() DriveConfig {
	return m.cfg
}

// Mix shapes the x (turn) and y (forward) axes and mixes them into left and
// right outputs. Joystick Y is negative when pushed forward, so y is negated
// unless inverted is set, which makes the rear of the robot its front.
func (m *Mixer) Mix(x, y, sensitivity float64, inverted bool) DriveOutput {
	sensitivity *= m.cfg.SensitivityDerate

	x = Shape(x, sensitivity)
	y = Shape(y, sensitivity)
	if !inverted {
		y = -y
	}
	y *= m.cfg.WheelRatio

	out := m.tank(x, y)
	out.Clutch = ClampUnit(y)
	return out
}

// MixLinear mixes x (turn) and y (forward, positive ahead) without shaping,
// derating or squaring, so a commanded value reaches the wheels unchanged.
// Used for scripted commands rather than joystick input.
func (m *Mixer) MixLinear(x, y float64) DriveOutput {
	y = ClampUnit(y)
	out := quadrantMix(ClampUnit(x), y)
	out.Clutch = y
	return out
}

// tank performs the arcade to tank conversion of joystick commands
func (m *Mixer) tank(x, y float64) DriveOutput {
	if m.cfg.Squared {
		x = signedSquare(x)
		y = signedSquare(y)
	}
	return quadrantMix(x, y)
}

// quadrantMix is the quadrant-dependent arcade to tank conversion
func quadrantMix(x, y float64) DriveOutput {
	var left, right float64
	switch {
	case y > 0 && x > 0:
		left = y - x
		right = math.Max(y, x)
	case y > 0:
		left = math.Max(y, -x)
		right = y + x
	case x > 0:
		left = -math.Max(-y, x)
		right = y + x
	default:
		left = y - x
		right = -math.Max(-y, -x)
	}
	// The wheel ratio can push the squared forward axis past unity.
	return DriveOutput{
		Left:  ClampUnit(left),
		Right: ClampUnit(right),
	}
}

// Drive arbitrates between both joysticks and mixes the winning command. The
// source of the command is returned alongside the outputs.
func (m *Mixer) Drive(a, b StickInput) (DriveOutput, DriveSource) {
	cmd := m.Arbitrate(a, b)
	return m.Mix(cmd.X, cmd.Y, cmd.Sensitivity, cmd.Inverted), cmd.Source
}
