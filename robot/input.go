package robot

import "frc-robot-core/control"

// Gamepad is one cycle's snapshot of an Xbox 360 style controller. Axes are in
// [-1, 1]; triggers in [0, 1].
type Gamepad struct {
	LeftX, LeftY   float64
	RightX, RightY float64
	LeftTrigger    float64
	RightTrigger   float64

	A, B, X, Y  bool
	LeftBumper  bool
	RightBumper bool
	Back, Start bool
}

// Signal names carried by the operator frames.
const (
	SigLeftX        = "left_x"
	SigLeftY        = "left_y"
	SigRightX       = "right_x"
	SigRightY       = "right_y"
	SigLeftTrigger  = "left_trigger"
	SigRightTrigger = "right_trigger"
	SigButtons      = "buttons"

	SigRangeInches = "range_in"
)

// Button bits inside the buttons signal, numbered like the driver station.
const (
	BitA = 1 << iota
	BitB
	BitX
	BitY
	BitLeftBumper
	BitRightBumper
	BitBack
	BitStart
)

// GamepadFromSignals builds a snapshot from decoded signal values, clamping
// every axis into range.
func GamepadFromSignals(values map[string]float64) Gamepad {
	buttons := uint32(values[SigButtons])
	return Gamepad{
		LeftX:        control.ClampUnit(values[SigLeftX]),
		LeftY:        control.ClampUnit(values[SigLeftY]),
		RightX:       control.ClampUnit(values[SigRightX]),
		RightY:       control.ClampUnit(values[SigRightY]),
		LeftTrigger:  control.ClampFloat(values[SigLeftTrigger], 0, 1),
		RightTrigger: control.ClampFloat(values[SigRightTrigger], 0, 1),
		A:            buttons&BitA != 0,
		B:            buttons&BitB != 0,
		X:            buttons&BitX != 0,
		Y:            buttons&BitY != 0,
		LeftBumper:   buttons&BitLeftBumper != 0,
		RightBumper:  buttons&BitRightBumper != 0,
		Back:         buttons&BitBack != 0,
		Start:        buttons&BitStart != 0,
	}
}

// Sensors holds the robot-side readings used during teleop
type Sensors struct {
	RangeInches float64 // Ultrasonic range to the target
}

// SensorsFromSignals builds a sensor snapshot from decoded signal values
func SensorsFromSignals(values map[string]float64) Sensors {
	return Sensors{RangeInches: values[SigRangeInches]}
}

// driveStick extracts the powertrain inputs of a gamepad. The left stick is
// the primary drive, the right stick the slow drive.
func driveStick(g Gamepad) control.StickInput {
	return control.StickInput{
		X:           g.LeftX,
		Y:           g.LeftY,
		SlowX:       g.RightX,
		SlowY:       g.RightY,
		Sensitivity: g.LeftTrigger,
		Invert:      g.A,
		BlockOther:  g.X,
	}
}
