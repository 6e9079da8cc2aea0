package control

import "math"

const (
	// MinOutput is the smallest input magnitude that moves an actuator.
	MinOutput = 0.100

	// DefaultSensitivity is used when the caller has no sensitivity axis.
	DefaultSensitivity = 0.2
)

// Shape applies the deadband and the sensitivity curve to a raw axis value:
//
//	y = s*x^3 + (1-s)*x
//
// where s is |sensitivity|. A sensitivity of 0 gives a pure cubic response and
// a sensitivity of 1 gives linear passthrough. Inputs are expected in [-1, 1].
func Shape(input, sensitivity float64) float64 {
	if math.Abs(input) < MinOutput {
		return 0
	}

	s := math.Abs(sensitivity)
	return s*input*input*input + (1-s)*input
}

// ShapeDefault shapes input with DefaultSensitivity.
func ShapeDefault(input float64) float64 {
	return Shape(input, DefaultSensitivity)
}
