// Package robot assembles the subsystems and runs them once per control cycle,
// either from the operators' gamepads or from the selected autonomous program.
package robot

import (
	"frc-robot-core/autonomous"
	"frc-robot-core/control"
	"frc-robot-core/telemetry"
	"frc-robot-core/utils"
)

// Config holds the tuning of every subsystem
type Config struct {
	Drive   control.DriveConfig   `json:"drive"`
	Shooter control.ShooterConfig `json:"shooter"`
}

// DefaultConfig returns the competition tuning
func DefaultConfig() Config {
	return Config{
		Drive:   control.DefaultDriveConfig(),
		Shooter: control.DefaultShooterConfig(),
	}
}

// Robot owns every subsystem and the autonomous sequencer
type Robot struct {
	log   *utils.Logger
	store telemetry.Store

	powertrain *powertrain
	shooter    *shooter
	intake     intake
	lifter     lifter

	sequencer *autonomous.Sequencer

	lastSource control.DriveSource
}

// New builds a robot from cfg. store is the dashboard table used for program
// selection and the timeline echo.
func New(cfg Config, store telemetry.Store, log *utils.Logger) *Robot {
	return &Robot{
		log:        log,
		store:      store,
		powertrain: &powertrain{mixer: control.NewMixer(cfg.Drive)},
		shooter:    &shooter{ballistics: control.NewBallistics(cfg.Shooter)},
		sequencer:  autonomous.NewSequencer(),
		lastSource: control.SourcePrimary,
	}
}

// TeleopPeriodic computes one manual-control cycle. driver is the primary
// joystick, second the co-driver's.
func (r *Robot) TeleopPeriodic(driver, second Gamepad, sensors Sensors) Outputs {
	out := Neutral()

	src := r.powertrain.teleop(driver, second, out)
	if src != r.lastSource {
		r.log.Debug("Drive source %s -> %s", r.lastSource, src)
		r.lastSource = src
	}

	r.intake.teleop(driver, second, out)
	r.lifter.teleop(driver, out)
	r.shooter.teleop(second, sensors, out)
	return out
}

// AutonomousInit selects the program chosen on the dashboard. An unknown or
// missing choice runs None.
func (r *Robot) AutonomousInit() autonomous.Program {
	name := r.store.GetString(telemetry.ProgramKey, autonomous.None.String())
	p := autonomous.ParseProgram(name)
	if p.String() != name {
		r.log.Warn("Unknown autonomous program %q; running %s", name, p)
	}
	r.SelectProgram(p)
	return p
}

// SelectProgram starts the autonomous phase with p and echoes its timeline to
// the dashboard.
func (r *Robot) SelectProgram(p autonomous.Program) {
	r.sequencer.Select(p, r.store)
	sched := r.sequencer.Schedule()
	sched.Publish(p, r.store)

	r.log.Info("Autonomous program %q selected (%d channels scheduled)", p, len(sched))
	for _, ch := range autonomous.Channels() {
		if w, ok := sched[ch]; ok {
			r.log.Debug("  %-16s value=%.2f window=[%.2f, %.2f]s", ch, w.Value, w.Start, w.End)
		}
	}
}

// Program returns the selected autonomous program
func (r *Robot) Program() autonomous.Program {
	return r.sequencer.Program()
}

// AutonomousPeriodic computes the outputs at t seconds into the autonomous phase
func (r *Robot) AutonomousPeriodic(t float64) Outputs {
	cmd := r.sequencer.Evaluate(t)
	out := Neutral()

	r.powertrain.auto(cmd.Get(autonomous.DriveX), cmd.Get(autonomous.DriveY), out)

	shooter := control.ClampUnit(cmd.Get(autonomous.Shooter))
	out[ShooterLeft] = shooter
	out[ShooterRight] = shooter
	out[ShooterActuator] = control.ClampUnit(cmd.Get(autonomous.ShooterAligner))
	out[IntakeMotor] = control.ClampUnit(cmd.Get(autonomous.Intake))
	out[HandsMotor] = control.ClampUnit(cmd.Get(autonomous.Hands))
	out[LifterSolenoid] = lifterState(cmd.Get(autonomous.Lifter))
	return out
}

// Disabled returns the outputs sent while the robot is disabled
func (r *Robot) Disabled() Outputs {
	return Neutral()
}
