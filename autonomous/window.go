package autonomous

// Channel is an actuator output driven by an autonomous program
type Channel int

const (
	Hands Channel = iota
	Intake
	Lifter
	DriveX
	DriveY
	Shooter
	ShooterAligner

	numChannels
)

// Channels lists every channel in output order
func Channels() []Channel {
	out := make([]Channel, 0, numChannels)
	for ch := Channel(0); ch < numChannels; ch++ {
		out = append(out, ch)
	}
	return out
}

// String returns the dashboard label of the channel
func (c Channel) String() string {
	switch c {
	case Hands:
		return "Hands"
	case Intake:
		return "Intake"
	case Lifter:
		return "Lifter"
	case DriveX:
		return "Drive X"
	case DriveY:
		return "Drive Y"
	case Shooter:
		return "Shooter"
	case ShooterAligner:
		return "Shooter Aligner"
	default:
		return "Unknown"
	}
}

// Window drives a channel at Value while Start <= t <= End (seconds since the
// autonomous phase began)
type Window struct {
	Value float64
	Start float64
	End   float64
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// Then returns a window that starts buffer seconds after w ends and lasts
// duration seconds
func (w Window) Then(value, buffer, duration float64) Window {
	start := w.End + buffer
	return Window{Value: value, Start: start, End: start + duration}
}

// State is the phase of a channel relative to its window
type State int

const (
	Idle State = iota
	Active
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// StateAt derives the channel state at elapsed time t
func StateAt(w Window, t float64) State {
	switch {
	case t < w.Start:
		return Idle
	case t > w.End:
		return Done
	default:
		return Active
	}
}
