// Package refresh decides how each frame is committed to the e-paper panel.
//
// Partial updates are fast but leave a faint image of earlier content
// behind. The Scheduler forces a full clear once every interval ticks so
// that ghosting never builds up past a fixed bound.
package refresh

// DefaultInterval is the full-clear period in ticks; at 2 Hz it is five minutes.
const DefaultInterval = 600

// Mode is the refresh decision for a single tick.
type Mode uint8

const (
	// ModePartial commits only the changed pixels with the fast waveform.
	ModePartial Mode = iota
	// ModeFullClear clears the panel first and commits with the deep waveform.
	ModeFullClear
)

func (m Mode) String() string {
	switch m {
	case ModePartial:
		return "partial"
	case ModeFullClear:
		return "full-clear"
	default:
		return "INVALID"
	}
}

// Transition returns the panel waveform used for m.
func (m Mode) Transition() Transition {
	if m == ModeFullClear {
		return TransitionWhiteToGray
	}
	return TransitionGrayToGray
}

// ClearsPanel reports whether the panel must be cleared before the commit.
func (m Mode) ClearsPanel() bool { return m == ModeFullClear }

// Transition is the waveform a panel uses to move pixels to the new frame.
type Transition uint8

const (
	// TransitionGrayToGray drives only pixels that differ from the previous frame.
	TransitionGrayToGray Transition = iota
	// TransitionWhiteToGray drives every pixel from white, removing residual charge.
	TransitionWhiteToGray
)

func (t Transition) String() string {
	switch t {
	case TransitionGrayToGray:
		return "gray-to-gray"
	case TransitionWhiteToGray:
		return "white-to-gray"
	default:
		return "INVALID"
	}
}

// Scheduler is the partial/full-clear state machine. The zero value is not
// usable; create one with NewScheduler.
type Scheduler struct {
	interval uint32
	counter  uint32 // always in [0, interval)
}

// NewScheduler returns a scheduler whose first tick is a full clear.
// An interval of 0 selects DefaultInterval.
func NewScheduler(interval uint32) *Scheduler {
	if interval == 0 {
		interval = DefaultInterval
	}
	return &Scheduler{interval: interval}
}

// Tick returns the mode for the current tick and advances the cycle counter.
// The tick that sees the counter at 0 is a full clear; every other tick is
// partial.
func (s *Scheduler) Tick() Mode {
	mode := ModePartial
	if s.counter == 0 {
		mode = ModeFullClear
	}
	s.counter++
	if s.counter >= s.interval {
		s.counter = 0
	}
	return mode
}

// Counter returns the position in the cycle of the next tick.
func (s *Scheduler) Counter() uint32 { return s.counter }

// Interval returns the full-clear period in ticks.
func (s *Scheduler) Interval() uint32 { return s.interval }
