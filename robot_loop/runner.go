package main

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.einride.tech/can"

	"frc-robot-core/robot"
	"frc-robot-core/telemetry"
	"frc-robot-core/utils"
)

// Frames exchanged with the bus.
const (
	driveFrame = "DRIVE_CMD"
	mechFrame  = "MECH_CMD"
	stateFrame = "ROBOT_STATE"

	operatorAPrefix = "OPERATOR_A"
	operatorBPrefix = "OPERATOR_B"
	sensorFrame     = "ROBOT_SENSORS"
)

type RunnerConfig struct {
	Interface     string
	MapPath       string
	ConfigPath    string
	TelemetryPath string
	Mode          string // Overrides the config file when set
	Program       string // Overrides the config file when set
}

// Phase is the stage of the match the robot is in
type Phase int

const (
	PhaseDisabled Phase = iota
	PhaseAutonomous
	PhaseTeleop
)

func (p Phase) String() string {
	switch p {
	case PhaseDisabled:
		return "disabled"
	case PhaseAutonomous:
		return "autonomous"
	case PhaseTeleop:
		return "teleop"
	default:
		return "unknown"
	}
}

// inputUpdate is one decoded operator or sensor frame
type inputUpdate struct {
	name   string
	values map[string]float64
	at     time.Time
}

type Runner struct {
	conf   Config
	log    *utils.Logger
	cmap   *utils.CANMap
	store  *telemetry.Table
	writer utils.CANWriter
	reader utils.CANReader
	robot  *robot.Robot
	period time.Duration

	// Latest operator state, merged across frames
	driver, second         map[string]float64
	sensors                map[string]float64
	lastDriver, lastSecond time.Time

	phase   Phase
	program uint8
	sent    uint64
}

func NewRunner(ctx context.Context, cfg RunnerConfig, log *utils.Logger) (*Runner, error) {
	cmap, err := utils.LoadCANMap(cfg.MapPath)
	if err != nil {
		return nil, errors.Wrap(err, "load can map")
	}

	conf, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cfg.Mode != "" {
		conf.Meta.Mode = cfg.Mode
	}
	if cfg.Program != "" {
		conf.Autonomous.Program = cfg.Program
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}

	store := telemetry.NewTable()
	if cfg.TelemetryPath != "" {
		if store, err = telemetry.LoadTable(cfg.TelemetryPath); err != nil {
			return nil, errors.Wrap(err, "load telemetry")
		}
	}

	writer, err := utils.NewSocketCANWriter(ctx, cfg.Interface)
	if err != nil {
		return nil, err
	}
	reader, err := utils.NewSocketCANReader(ctx, cfg.Interface)
	if err != nil {
		writer.Close()
		return nil, err
	}

	r, err := newRunner(conf, cmap, store, writer, reader, log)
	if err != nil {
		reader.Close()
		writer.Close()
		return nil, err
	}
	return r, nil
}

func newRunner(conf Config, cmap *utils.CANMap, store *telemetry.Table,
	writer utils.CANWriter, reader utils.CANReader, log *utils.Logger) (*Runner, error) {
	fd, err := cmap.FrameByName(driveFrame)
	if err != nil {
		return nil, errors.Wrap(err, "frame")
	}
	if fd.CycleMS <= 0 {
		return nil, errors.Errorf("frame %s has invalid cycle_ms %d", fd.Name, fd.CycleMS)
	}
	for _, name := range []string{mechFrame, stateFrame} {
		if _, err := cmap.FrameByName(name); err != nil {
			return nil, errors.Wrap(err, "frame")
		}
	}

	return &Runner{
		conf:    conf,
		log:     log,
		cmap:    cmap,
		store:   store,
		writer:  writer,
		reader:  reader,
		robot:   robot.New(conf.Robot, store, log.Named("robot")),
		period:  time.Duration(fd.CycleMS) * time.Millisecond,
		driver:  map[string]float64{},
		second:  map[string]float64{},
		sensors: map[string]float64{},
	}, nil
}

func (r *Runner) Close() {
	if r.reader != nil {
		_ = r.reader.Close()
	}
	if r.writer != nil {
		_ = r.writer.Close()
	}
}

// Run drives the control loop once per cycle until the configured phases
// are over or ctx is canceled. Neutral commands are sent on the way out.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("Starting %s: cycle=%s autonomous=%.1fs teleop=%.1fs program=%q",
		r.conf.Meta.Mode, r.period, r.conf.Timing.AutonomousS, r.conf.Timing.TeleopS,
		r.conf.Autonomous.Program)
	defer r.stop()

	rxCtx, cancelRx := context.WithCancel(ctx)
	defer cancelRx()
	rxChan := make(chan inputUpdate, 100)
	go r.receiveLoop(rxCtx, rxChan)

	start := time.Now()
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Warn("Context canceled; stopping")
			return ctx.Err()
		case in := <-rxChan:
			r.applyInput(in)
		case now := <-ticker.C:
			done, err := r.step(ctx, now, now.Sub(start))
			if err != nil {
				return err
			}
			if done {
				r.log.Info("Match complete. frames_sent=%d", r.sent)
				return nil
			}
		}
	}
}

// phaseAt maps time since start to the active phase and the time spent in it
func (r *Runner) phaseAt(elapsed time.Duration) (Phase, float64, bool) {
	t := elapsed.Seconds()
	auto, teleop := r.conf.Timing.AutonomousS, r.conf.Timing.TeleopS

	switch r.conf.Meta.Mode {
	case ModeAutonomous:
		if t < auto {
			return PhaseAutonomous, t, false
		}
	case ModeTeleop:
		if t < teleop {
			return PhaseTeleop, t, false
		}
	default:
		if t < auto {
			return PhaseAutonomous, t, false
		}
		if t < auto+teleop {
			return PhaseTeleop, t - auto, false
		}
	}
	return PhaseDisabled, 0, true
}

// step runs one control cycle
func (r *Runner) step(ctx context.Context, now time.Time, elapsed time.Duration) (bool, error) {
	phase, t, done := r.phaseAt(elapsed)
	if done {
		return true, nil
	}
	if phase != r.phase {
		r.enter(phase)
	}

	var out robot.Outputs
	switch phase {
	case PhaseAutonomous:
		out = r.robot.AutonomousPeriodic(t)
	case PhaseTeleop:
		driver, second, sensors := r.currentInput(now)
		out = r.robot.TeleopPeriodic(driver, second, sensors)
	default:
		out = r.robot.Disabled()
	}

	if err := r.transmit(ctx, out, t); err != nil {
		r.log.Critical("Transmit failed at t=%.3f: %v", t, err)
		return false, err
	}
	r.log.Trace("%s t=%.3f %s", phase, t, out)
	return false, nil
}

func (r *Runner) enter(phase Phase) {
	r.log.Info("Phase %s -> %s", r.phase, phase)
	r.phase = phase

	if phase == PhaseAutonomous {
		if r.conf.Autonomous.Program != "" {
			r.store.PutString(telemetry.ProgramKey, r.conf.Autonomous.Program)
		}
		r.program = uint8(r.robot.AutonomousInit())
		r.log.Debug("Telemetry: %s", strings.Join(r.store.Snapshot(), ", "))
	}
}

// currentInput returns the latest operator state. A console that has gone
// quiet is replaced by a neutral gamepad.
func (r *Runner) currentInput(now time.Time) (robot.Gamepad, robot.Gamepad, robot.Sensors) {
	sensors := robot.SensorsFromSignals(r.sensors)
	driver := r.gamepad("driver", r.driver, r.lastDriver, now)
	second := r.gamepad("co-driver", r.second, r.lastSecond, now)
	return driver, second, sensors
}

func (r *Runner) gamepad(console string, values map[string]float64, last, now time.Time) robot.Gamepad {
	stale := time.Duration(r.conf.Timing.InputStaleS * float64(time.Second))
	if age := now.Sub(last); last.IsZero() || age > stale {
		if r.sent%60 == 0 { // every 20 cycles
			r.log.Warn("No %s input for %s - holding neutral", console, age.Round(time.Millisecond))
		}
		return robot.Gamepad{}
	}
	return robot.GamepadFromSignals(values)
}

func (r *Runner) applyInput(in inputUpdate) {
	var dst map[string]float64
	switch {
	case strings.HasPrefix(in.name, operatorAPrefix):
		dst = r.driver
		r.lastDriver = in.at
	case strings.HasPrefix(in.name, operatorBPrefix):
		dst = r.second
		r.lastSecond = in.at
	case in.name == sensorFrame:
		dst = r.sensors
	default:
		r.log.Trace("Ignoring frame %s", in.name)
		return
	}
	for k, v := range in.values {
		dst[k] = v
	}
}

func (r *Runner) transmit(ctx context.Context, out robot.Outputs, t float64) error {
	values := out.Signals()
	values["phase"] = float64(r.phase)
	values["program"] = float64(r.program)
	values["elapsed_s"] = t

	for _, name := range []string{driveFrame, mechFrame, stateFrame} {
		frame, err := r.cmap.EncodeFrame(name, values)
		if err != nil {
			return errors.Wrapf(err, "encode %s", name)
		}
		if err := r.writer.WriteFrame(ctx, frame); err != nil {
			return err
		}
		r.sent++
	}
	return nil
}

// stop sends one neutral cycle so no actuator keeps its last command
func (r *Runner) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), r.period)
	defer cancel()

	r.phase = PhaseDisabled
	if err := r.transmit(ctx, r.robot.Disabled(), 0); err != nil {
		r.log.Error("Neutral command failed: %v", err)
	}
}

// receiveLoop decodes operator and sensor frames until ctx is done
func (r *Runner) receiveLoop(ctx context.Context, updates chan<- inputUpdate) {
	r.log.Debug("RX loop started")
	defer r.log.Debug("RX loop stopped")

	for {
		frame, err := r.reader.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.log.Error("RX error: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.period):
			}
			continue
		}
		r.handleFrame(ctx, frame, updates)
	}
}

func (r *Runner) handleFrame(ctx context.Context, frame can.Frame, updates chan<- inputUpdate) {
	fd, values, err := r.cmap.DecodeFrame(frame)
	if err != nil {
		r.log.Trace("RX id=0x%X undecoded: %v", frame.ID, err)
		return
	}
	if fd.Direction != utils.DirectionRX {
		return
	}
	select {
	case updates <- inputUpdate{name: fd.Name, values: values, at: time.Now()}:
	case <-ctx.Done():
	default:
		// Channel full, skip
	}
}
