package control

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestShapeDeadband(t *testing.T) {
	for _, in := range []float64{0, 0.05, -0.05, 0.0999, -0.0999} {
		for _, s := range []float64{0, 0.2, 0.5, 1, -1} {
			if got := Shape(in, s); got != 0 {
				t.Fatalf("Shape(%v, %v) = %v, want 0", in, s, got)
			}
		}
	}
}

func TestShapeCurveEnds(t *testing.T) {
	for _, in := range []float64{0.1, -0.1, 0.35, -0.5, 0.9, 1, -1} {
		if got, want := Shape(in, 0), in*in*in; math.Abs(got-want) > eps {
			t.Fatalf("Shape(%v, 0) = %v, want %v", in, got, want)
		}
		if got := Shape(in, 1); math.Abs(got-in) > eps {
			t.Fatalf("Shape(%v, 1) = %v, want %v", in, got, in)
		}
	}
}

func TestShapeUsesSensitivityMagnitude(t *testing.T) {
	if Shape(0.5, -0.3) != Shape(0.5, 0.3) {
		t.Fatal("negative sensitivity should behave like its magnitude")
	}
}

func TestShapeDefault(t *testing.T) {
	want := 0.2*0.5*0.5*0.5 + 0.8*0.5
	if got := ShapeDefault(0.5); math.Abs(got-want) > eps {
		t.Fatalf("ShapeDefault(0.5) = %v, want %v", got, want)
	}
}
