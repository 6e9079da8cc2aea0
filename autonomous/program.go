package autonomous

import "frc-robot-core/telemetry"

// Program is one entry of the autonomous menu
type Program int

const (
	None Program = iota
	Custom
	DriveForward
	DriveReverse
	ShootNoDrive
	DriveFwdAndShoot
	DriveRevAndShoot
	TakeBall
	TakeBallAndShoot
	TakeBallAndDriveFwd
	TakeBallAndDriveRev

	numPrograms
)

// Timeline constants, in seconds and normalized actuator commands.
const (
	// Buffer separates chained stages of composite programs.
	Buffer = 3.0
	// DefaultDuration is how long a single-stage action runs.
	DefaultDuration = 5.0

	spinUp       = 2.0
	turnDuration = 3.0

	driveSpeed   = 0.6
	turnSpeed    = 0.5
	intakeSpeed  = 1.0
	handsDrop    = 0.8
	shooterSpeed = 1.0
	alignerSpeed = 0.85
)

// Programs lists the menu in display order, default first
func Programs() []Program {
	out := make([]Program, 0, numPrograms)
	for p := Program(0); p < numPrograms; p++ {
		out = append(out, p)
	}
	return out
}

// String returns the menu label of the program
func (p Program) String() string {
	switch p {
	case None:
		return "None"
	case Custom:
		return "Custom"
	case DriveForward:
		return "Drive Forward"
	case DriveReverse:
		return "Drive Reverse"
	case ShootNoDrive:
		return "Shoot (no drive)"
	case DriveFwdAndShoot:
		return "Shoot (drive fwd)"
	case DriveRevAndShoot:
		return "Shoot (drive rev)"
	case TakeBall:
		return "Take ball"
	case TakeBallAndShoot:
		return "Take ball & shoot"
	case TakeBallAndDriveFwd:
		return "Take ball & drive fwd"
	case TakeBallAndDriveRev:
		return "Take ball & drive rev"
	default:
		return "Unknown"
	}
}

// ParseProgram looks a program up by its menu label. Unknown labels select
// None.
func ParseProgram(name string) Program {
	for _, p := range Programs() {
		if p.String() == name {
			return p
		}
	}
	return None
}

// Schedule maps each channel to its window. A channel without a window stays
// neutral for the whole phase.
type Schedule map[Channel]Window

// BuildSchedule returns the timeline of p. The Custom program reads every
// channel's value and window from store; the others are fixed.
func BuildSchedule(p Program, store telemetry.Store) Schedule {
	switch p {
	case None:
		return Schedule{}
	case Custom:
		return customSchedule(store)
	case DriveForward:
		return driveSchedule(driveSpeed)
	case DriveReverse:
		return driveSchedule(-driveSpeed)
	case ShootNoDrive:
		return shootSchedule(Window{Value: shooterSpeed, Start: 0, End: DefaultDuration})
	case DriveFwdAndShoot:
		return driveAndShootSchedule(driveSpeed)
	case DriveRevAndShoot:
		return driveAndShootSchedule(-driveSpeed)
	case TakeBall:
		return takeBallSchedule()
	case TakeBallAndShoot:
		s := takeBallSchedule()
		shooter := s[Intake].Then(shooterSpeed, Buffer, DefaultDuration)
		for ch, w := range shootSchedule(shooter) {
			s[ch] = w
		}
		return s
	case TakeBallAndDriveFwd:
		return takeBallAndDriveSchedule(driveSpeed)
	case TakeBallAndDriveRev:
		return takeBallAndDriveSchedule(-driveSpeed)
	default:
		return Schedule{}
	}
}

func driveSchedule(speed float64) Schedule {
	return Schedule{
		DriveY: {Value: speed, Start: 0, End: DefaultDuration},
	}
}

func shootSchedule(shooter Window) Schedule {
	return Schedule{
		Shooter:        shooter,
		ShooterAligner: {Value: alignerSpeed, Start: shooter.Start + spinUp, End: shooter.End},
	}
}

func driveAndShootSchedule(speed float64) Schedule {
	s := driveSchedule(speed)
	for ch, w := range shootSchedule(s[DriveY].Then(shooterSpeed, Buffer, DefaultDuration)) {
		s[ch] = w
	}
	return s
}

func takeBallSchedule() Schedule {
	hands := Window{Value: handsDrop, Start: 0, End: 1.0}
	return Schedule{
		Hands:  hands,
		Intake: {Value: intakeSpeed, Start: hands.End, End: 9.0},
	}
}

func takeBallAndDriveSchedule(speed float64) Schedule {
	s := takeBallSchedule()
	s[DriveX] = s[Intake].Then(turnSpeed, Buffer, turnDuration)
	s[DriveY] = s[DriveX].Then(speed, Buffer, DefaultDuration)
	return s
}

func customSchedule(store telemetry.Store) Schedule {
	s := Schedule{}
	if store == nil {
		return s
	}
	for _, ch := range Channels() {
		label := ch.String()
		s[ch] = Window{
			Value: store.GetNumber(telemetry.ValueKey(label), 0),
			Start: store.GetNumber(telemetry.StartKey(label), 0),
			End:   store.GetNumber(telemetry.EndKey(label), 0),
		}
	}
	return s
}

// Publish echoes the schedule to store, zeroing channels it does not drive
func (s Schedule) Publish(p Program, store telemetry.Store) {
	store.PutString(telemetry.ProgramKey, p.String())
	for _, ch := range Channels() {
		label := ch.String()
		w := s[ch]
		store.PutNumber(telemetry.ValueKey(label), w.Value)
		store.PutNumber(telemetry.StartKey(label), w.Start)
		store.PutNumber(telemetry.EndKey(label), w.End)
	}
}
