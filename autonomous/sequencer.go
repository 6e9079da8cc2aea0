// Package autonomous runs the timed programs of the unattended phase.
//
// A program is a Schedule of one Window per channel. Every cycle the
// Sequencer derives each channel's state from the elapsed phase time alone,
// so evaluating the same instant twice always gives the same commands.
package autonomous

import "frc-robot-core/telemetry"

// Commands holds one value per channel for a single cycle
type Commands [numChannels]float64

// Get returns the command for ch
func (c Commands) Get(ch Channel) float64 {
	if ch < 0 || ch >= numChannels {
		return 0
	}
	return c[ch]
}

// Sequencer evaluates the selected program against elapsed phase time
type Sequencer struct {
	program  Program
	schedule Schedule
}

// NewSequencer creates a sequencer with the None program selected
func NewSequencer() *Sequencer {
	return &Sequencer{program: None, schedule: Schedule{}}
}

// Select replaces the current program. Custom windows are read from store
// now and never again.
func (s *Sequencer) Select(p Program, store telemetry.Store) {
	s.program = p
	s.schedule = BuildSchedule(p, store)
}

// Program returns the selected program
func (s *Sequencer) Program() Program {
	return s.program
}

// Schedule returns a copy of the selected timeline
func (s *Sequencer) Schedule() Schedule {
	out := make(Schedule, len(s.schedule))
	for ch, w := range s.schedule {
		out[ch] = w
	}
	return out
}

// State returns the phase of ch at elapsed time t. Channels without a window
// are Idle forever.
func (s *Sequencer) State(ch Channel, t float64) State {
	w, ok := s.schedule[ch]
	if !ok {
		return Idle
	}
	return StateAt(w, t)
}

// Enabled reports whether ch is inside its window at t
func (s *Sequencer) Enabled(ch Channel, t float64) bool {
	return s.State(ch, t) == Active
}

// Evaluate returns the per-channel commands at elapsed time t: the window
// value for active channels, zero for the rest
func (s *Sequencer) Evaluate(t float64) Commands {
	var out Commands
	for ch, w := range s.schedule {
		if StateAt(w, t) == Active {
			out[ch] = w.Value
		}
	}
	return out
}
