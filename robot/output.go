package robot

import (
	"fmt"
	"sort"
	"strings"
)

// Output names an actuator command; the names double as signal names in the
// command frames.
type Output string

const (
	LeftDrive       Output = "left_drive_cmd"
	RightDrive      Output = "right_drive_cmd"
	Clutch          Output = "clutch_cmd"
	ShooterLeft     Output = "shooter_left_cmd"
	ShooterRight    Output = "shooter_right_cmd"
	ShooterActuator Output = "shooter_actuator_cmd"
	IntakeMotor     Output = "intake_cmd"
	HandsMotor      Output = "hands_cmd"
	LifterSolenoid  Output = "lifter_cmd"
)

// Lifter solenoid states.
const (
	LifterReverse = -1.0
	LifterOff     = 0.0
	LifterForward = 1.0
)

// AllOutputs lists every actuator command
func AllOutputs() []Output {
	return []Output{
		LeftDrive, RightDrive, Clutch,
		ShooterLeft, ShooterRight, ShooterActuator,
		IntakeMotor, HandsMotor, LifterSolenoid,
	}
}

// Outputs is one cycle's worth of actuator commands. Missing entries are
// neutral.
type Outputs map[Output]float64

// Neutral returns every output at its off value
func Neutral() Outputs {
	out := make(Outputs, len(AllOutputs()))
	for _, o := range AllOutputs() {
		out[o] = 0
	}
	return out
}

// Signals converts the outputs into encoder input
func (o Outputs) Signals() map[string]float64 {
	values := make(map[string]float64, len(o))
	for k, v := range o {
		values[string(k)] = v
	}
	return values
}

// String renders the outputs in a stable order for logging
func (o Outputs) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.3f", k, o[Output(k)]))
	}
	return strings.Join(parts, " ")
}
