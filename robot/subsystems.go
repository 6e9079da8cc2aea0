package robot

import "frc-robot-core/control"

const (
	handsSpeed    = 0.8
	actuatorSpeed = 0.85
)

// powertrain drives the wheels and the transmission clutch
type powertrain struct {
	mixer *control.Mixer
}

func (p *powertrain) teleop(a, b Gamepad, out Outputs) control.DriveSource {
	d, src := p.mixer.Drive(driveStick(a), driveStick(b))
	p.write(d, out)
	return src
}

// auto drives from autonomous commands where positive y is forward. Window
// values reach the wheels as configured.
func (p *powertrain) auto(x, y float64, out Outputs) {
	p.write(p.mixer.MixLinear(x, y), out)
}

func (p *powertrain) write(d control.DriveOutput, out Outputs) {
	out[LeftDrive] = d.Left
	out[RightDrive] = d.Right
	out[Clutch] = d.Clutch
}

// shooter spins the two flywheels and feeds the ball with the actuator
type shooter struct {
	ballistics *control.Ballistics
}

func (s *shooter) teleop(g Gamepad, sensors Sensors, out Outputs) {
	switch {
	case g.Y:
		v := s.ballistics.Normalize(sensors.RangeInches)
		s.shoot(v, v, out)
	case g.B:
		s.shoot(1, 1, out)
	default:
		s.shoot(g.LeftTrigger, g.RightTrigger, out)
	}

	out[ShooterActuator] = 0
	if g.RightBumper {
		out[ShooterActuator] = control.ShapeDefault(actuatorSpeed)
	}
}

func (s *shooter) shoot(left, right float64, out Outputs) {
	out[ShooterLeft] = control.Shape(left, 0)
	out[ShooterRight] = control.Shape(right, 0)
}

// intake takes balls in with the roller and moves the hands
type intake struct{}

func (intake) teleop(driver, second Gamepad, out Outputs) {
	var roller float64
	switch {
	case driver.LeftBumper:
		roller = 1
	case driver.RightBumper:
		roller = -1
	}

	var hands float64
	switch {
	case second.Back:
		hands = handsSpeed
	case second.Start:
		hands = -handsSpeed
	}

	out[IntakeMotor] = control.Shape(roller, 0)
	out[HandsMotor] = control.Shape(hands, 0)
}

// lifter is a double solenoid: forward, reverse or off
type lifter struct{}

func (lifter) teleop(g Gamepad, out Outputs) {
	switch {
	case g.Y:
		out[LifterSolenoid] = LifterForward
	case g.B:
		out[LifterSolenoid] = LifterReverse
	default:
		out[LifterSolenoid] = LifterOff
	}
}

// lifterState maps an analog command onto the solenoid states
func lifterState(v float64) float64 {
	switch {
	case v > 0:
		return LifterForward
	case v < 0:
		return LifterReverse
	default:
		return LifterOff
	}
}
