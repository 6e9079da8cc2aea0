package control

// StickInput is the drive-related state of one operator joystick
type StickInput struct {
	X, Y         float64 // Primary drive axes
	SlowX, SlowY float64 // Secondary ("slow") drive axes
	Sensitivity  float64 // Sensitivity axis, [0, 1]
	Invert       bool    // Drive with the rear as front
	BlockOther   bool    // Ignore the other joystick's secondary axes
}

// DriveSource identifies which axes produced a DriveCommand
type DriveSource int

const (
	SourcePrimary DriveSource = iota
	SourcePrimarySlow
	SourceSecondary
)

func (s DriveSource) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourcePrimarySlow:
		return "primary-slow"
	case SourceSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// DriveCommand is the single command selected for this cycle
type DriveCommand struct {
	X, Y        float64
	Sensitivity float64
	Inverted    bool
	Source      DriveSource
}

// Arbitrate picks exactly one joystick to drive the robot.
//
// Joystick A drives with its primary axes, or with its slow axes (scaled by
// SlowScale) when either slow axis is deflected further than the matching
// primary axis. Joystick B takes over with its slow axes, scaled by
// SecondaryScale at full sensitivity, when either of them is deflected further
// than the matching axis joystick A would drive with and A is not holding its
// block button. Comparisons are by magnitude and strict, so ties keep A.
func (m *Mixer) Arbitrate(a, b StickInput) DriveCommand {
	cmd := DriveCommand{
		X:           a.X,
		Y:           a.Y,
		Sensitivity: a.Sensitivity,
		Inverted:    a.Invert,
		Source:      SourcePrimary,
	}
	ax, ay := a.X, a.Y
	if m.cfg.SlowDriveEnabled && (exceeds(a.SlowX, a.X) || exceeds(a.SlowY, a.Y)) {
		ax, ay = a.SlowX, a.SlowY
		cmd.X = a.SlowX * m.cfg.SlowScale
		cmd.Y = a.SlowY * m.cfg.SlowScale
		cmd.Source = SourcePrimarySlow
	}

	if a.BlockOther {
		return cmd
	}
	if exceeds(b.SlowX, ax) || exceeds(b.SlowY, ay) {
		return DriveCommand{
			X:           b.SlowX * m.cfg.SecondaryScale,
			Y:           b.SlowY * m.cfg.SecondaryScale,
			Sensitivity: 1.0,
			Inverted:    b.Invert,
			Source:      SourceSecondary,
		}
	}
	return cmd
}
