package control

import "math"

// ClampFloat clamps value between min and max
func ClampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampUnit clamps value to [-1, 1]
func ClampUnit(value float64) float64 {
	return ClampFloat(value, -1, 1)
}

// signedSquare squares v while keeping its sign.
func signedSquare(v float64) float64 {
	if v >= 0 {
		return v * v
	}
	return -(v * v)
}

// exceeds reports whether |a| is strictly larger than |b|.
func exceeds(a, b float64) bool {
	return math.Abs(a) > math.Abs(b)
}
