package robot

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"frc-robot-core/autonomous"
	"frc-robot-core/control"
	"frc-robot-core/telemetry"
	"frc-robot-core/utils"
)

func newTestRobot(t *testing.T) (*Robot, *telemetry.Table, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	store := telemetry.NewTable()
	return New(DefaultConfig(), store, utils.NewLogger(&buf, utils.DEBUG)), store, &buf
}

func TestTeleopIdleIsNeutral(t *testing.T) {
	r, _, _ := newTestRobot(t)
	out := r.TeleopPeriodic(Gamepad{}, Gamepad{}, Sensors{})
	for _, o := range AllOutputs() {
		v, ok := out[o]
		if !ok || v != 0 {
			t.Fatalf("%s = %v (present=%v), want 0", o, v, ok)
		}
	}
}

func TestTeleopDriveForward(t *testing.T) {
	r, _, _ := newTestRobot(t)
	out := r.TeleopPeriodic(Gamepad{LeftY: -1, LeftTrigger: 1}, Gamepad{}, Sensors{})
	if out[LeftDrive] != 1 || out[RightDrive] != 1 || out[Clutch] != 1 {
		t.Fatalf("full forward: %v", out)
	}
}

func TestTeleopSecondaryTakesOver(t *testing.T) {
	r, _, buf := newTestRobot(t)
	driver := Gamepad{LeftX: 0.2, LeftY: 0.2}
	second := Gamepad{RightX: 0.9, RightY: 0.1}

	out := r.TeleopPeriodic(driver, second, Sensors{})
	want, _ := control.NewMixer(control.DefaultDriveConfig()).Drive(driveStick(driver), driveStick(second))
	if out[LeftDrive] != want.Left || out[RightDrive] != want.Right {
		t.Fatalf("got %v, want %+v", out, want)
	}
	if !strings.Contains(buf.String(), "secondary") {
		t.Fatalf("expected drive source change to be logged, got %q", buf.String())
	}

	driver.X = true
	out = r.TeleopPeriodic(driver, second, Sensors{})
	blocked := control.NewMixer(control.DefaultDriveConfig()).Mix(0.2, 0.2, 0, false)
	if out[LeftDrive] != blocked.Left || out[RightDrive] != blocked.Right {
		t.Fatalf("blocked: got %v, want %+v", out, blocked)
	}
}

func TestTeleopMechanisms(t *testing.T) {
	r, _, _ := newTestRobot(t)

	out := r.TeleopPeriodic(
		Gamepad{LeftBumper: true, Y: true},
		Gamepad{Back: true, B: true, RightBumper: true},
		Sensors{},
	)
	if out[IntakeMotor] != 1 {
		t.Fatalf("intake = %v, want 1", out[IntakeMotor])
	}
	if math.Abs(out[HandsMotor]-0.512) > 1e-9 {
		t.Fatalf("hands = %v, want 0.8^3", out[HandsMotor])
	}
	if out[LifterSolenoid] != LifterForward {
		t.Fatalf("lifter = %v, want forward", out[LifterSolenoid])
	}
	if out[ShooterLeft] != 1 || out[ShooterRight] != 1 {
		t.Fatalf("brute shoot = %v/%v, want 1/1", out[ShooterLeft], out[ShooterRight])
	}
	if out[ShooterActuator] != control.ShapeDefault(0.85) {
		t.Fatalf("actuator = %v", out[ShooterActuator])
	}

	out = r.TeleopPeriodic(Gamepad{RightBumper: true, B: true}, Gamepad{Start: true, LeftTrigger: 0.5}, Sensors{})
	if out[IntakeMotor] != -1 || out[LifterSolenoid] != LifterReverse {
		t.Fatalf("give/lower: %v", out)
	}
	if out[HandsMotor] >= 0 {
		t.Fatalf("hands = %v, want negative", out[HandsMotor])
	}
	if out[ShooterLeft] != 0.125 || out[ShooterRight] != 0 {
		t.Fatalf("trigger shoot = %v/%v", out[ShooterLeft], out[ShooterRight])
	}
}

func TestTeleopSmartShoot(t *testing.T) {
	r, _, _ := newTestRobot(t)
	cfg := control.DefaultShooterConfig()
	b := control.NewBallistics(cfg)

	rangeIn := 40.0
	out := r.TeleopPeriodic(Gamepad{}, Gamepad{Y: true}, Sensors{RangeInches: rangeIn})
	want := control.Shape(b.Normalize(rangeIn), 0)
	if out[ShooterLeft] != want || out[ShooterRight] != want {
		t.Fatalf("smart shoot = %v, want %v", out[ShooterLeft], want)
	}
}

func TestAutonomousInitFromDashboard(t *testing.T) {
	r, store, buf := newTestRobot(t)
	store.PutString(telemetry.ProgramKey, "Take ball & drive fwd")

	if p := r.AutonomousInit(); p != autonomous.TakeBallAndDriveFwd {
		t.Fatalf("program = %v", p)
	}
	if got := store.GetNumber(telemetry.StartKey("Drive Y"), 0); got != 18 {
		t.Fatalf("published drive y start = %v, want 18", got)
	}

	out := r.AutonomousPeriodic(5)
	if out[IntakeMotor] != 1 || out[LeftDrive] != 0 {
		t.Fatalf("t=5: %v", out)
	}
	out = r.AutonomousPeriodic(20)
	if out[IntakeMotor] != 0 || out[LeftDrive] <= 0 || out[RightDrive] <= 0 {
		t.Fatalf("t=20: %v", out)
	}
	if !strings.Contains(buf.String(), "Take ball & drive fwd") {
		t.Fatalf("selection not logged: %q", buf.String())
	}
}

func TestAutonomousDriveUsesWindowValue(t *testing.T) {
	r, store, _ := newTestRobot(t)

	r.SelectProgram(autonomous.DriveForward)
	out := r.AutonomousPeriodic(1)
	if out[LeftDrive] != 0.6 || out[RightDrive] != 0.6 || out[Clutch] != 0.6 {
		t.Fatalf("drive forward at t=1: %v, want 0.6 on both wheels", out)
	}

	for _, v := range []float64{0.3, 0.09, -0.45} {
		store.PutNumber(telemetry.ValueKey("Drive Y"), v)
		store.PutNumber(telemetry.StartKey("Drive Y"), 0)
		store.PutNumber(telemetry.EndKey("Drive Y"), 5)
		r.SelectProgram(autonomous.Custom)

		out = r.AutonomousPeriodic(2)
		if out[LeftDrive] != v || out[RightDrive] != v {
			t.Fatalf("custom drive y %v: %v", v, out)
		}
	}
}

func TestAutonomousUnknownRunsNone(t *testing.T) {
	r, store, buf := newTestRobot(t)
	store.PutString(telemetry.ProgramKey, "Bogus")

	if p := r.AutonomousInit(); p != autonomous.None {
		t.Fatalf("program = %v, want None", p)
	}
	if !strings.Contains(buf.String(), "[WARN]") {
		t.Fatal("expected a warning for the unknown program")
	}
	for _, tt := range []float64{0, 1, 7.5, 14.9, 100} {
		for o, v := range r.AutonomousPeriodic(tt) {
			if v != 0 {
				t.Fatalf("t=%v: %s = %v, want 0", tt, o, v)
			}
		}
	}
}

func TestAutonomousCustomLifter(t *testing.T) {
	r, store, _ := newTestRobot(t)
	store.PutNumber(telemetry.ValueKey("Lifter"), -0.4)
	store.PutNumber(telemetry.StartKey("Lifter"), 1)
	store.PutNumber(telemetry.EndKey("Lifter"), 2)
	r.SelectProgram(autonomous.Custom)

	if got := r.AutonomousPeriodic(1.5)[LifterSolenoid]; got != LifterReverse {
		t.Fatalf("lifter = %v, want reverse", got)
	}
	if got := r.AutonomousPeriodic(2.5)[LifterSolenoid]; got != LifterOff {
		t.Fatalf("lifter = %v, want off", got)
	}
}

func TestGamepadFromSignals(t *testing.T) {
	g := GamepadFromSignals(map[string]float64{
		SigLeftX:        1.7,
		SigLeftY:        -0.5,
		SigLeftTrigger:  -0.2,
		SigRightTrigger: 0.4,
		SigButtons:      BitA | BitRightBumper | BitStart,
	})
	if g.LeftX != 1 || g.LeftY != -0.5 || g.LeftTrigger != 0 || g.RightTrigger != 0.4 {
		t.Fatalf("axes: %+v", g)
	}
	if !g.A || !g.RightBumper || !g.Start || g.B || g.X {
		t.Fatalf("buttons: %+v", g)
	}
}
