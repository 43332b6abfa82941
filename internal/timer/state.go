// Package timer drives the elapsed match minute across halves. The state
// machine is pure: transitions take a state and return a new one, with
// persistence injected at the boundary through Store.
package timer

// Period identifies the half being played.
type Period string

const (
	PeriodFirst  Period = "first"
	PeriodSecond Period = "second"
)

// Phase is the derived state-machine phase.
type Phase string

const (
	PhaseNotStarted        Phase = "NOT_STARTED"
	PhaseFirstHalfRunning  Phase = "FIRST_HALF_RUNNING"
	PhaseFirstHalfPaused   Phase = "FIRST_HALF_PAUSED"
	PhaseHalfTime          Phase = "HALF_TIME"
	PhaseSecondHalfRunning Phase = "SECOND_HALF_RUNNING"
	PhaseSecondHalfPaused  Phase = "SECOND_HALF_PAUSED"
	PhaseFullTime          Phase = "FULL_TIME"
)

// State is the persisted timer state for one session. The zero value is
// a timer that has never started.
type State struct {
	Minute   int    `json:"minute"`
	Second   int    `json:"second"`
	Running  bool   `json:"running"`
	Started  bool   `json:"started"`
	Period   Period `json:"period,omitempty"`
	HalfTime bool   `json:"half_time"`
	FullTime bool   `json:"full_time"`
}

// Phase derives the state-machine phase from the persisted flags.
func (s State) Phase() Phase {
	switch {
	case !s.Started:
		return PhaseNotStarted
	case s.FullTime:
		return PhaseFullTime
	case s.HalfTime:
		return PhaseHalfTime
	case s.Running && s.Period == PeriodSecond:
		return PhaseSecondHalfRunning
	case s.Running:
		return PhaseFirstHalfRunning
	case s.Period == PeriodSecond:
		return PhaseSecondHalfPaused
	default:
		return PhaseFirstHalfPaused
	}
}

// inHalf reports whether the clock is inside a half (running or paused),
// the only phases where manual corrections apply.
func (s State) inHalf() bool {
	return s.Started && !s.HalfTime && !s.FullTime
}

// Start begins the first half from NOT_STARTED, or resumes from a
// paused half. Any other phase is left unchanged.
func Start(s State) State {
	switch s.Phase() {
	case PhaseNotStarted:
		s.Started = true
		s.Running = true
		s.Period = PeriodFirst
	case PhaseFirstHalfPaused, PhaseSecondHalfPaused:
		s.Running = true
	}
	return s
}

// Pause stops the clock while inside a running half; no-op otherwise.
func Pause(s State) State {
	if s.Running {
		s.Running = false
	}
	return s
}

// CallHalfTime stops the clock and enters half-time from either
// first-half phase.
func CallHalfTime(s State) State {
	switch s.Phase() {
	case PhaseFirstHalfRunning, PhaseFirstHalfPaused:
		s.HalfTime = true
		s.Running = false
	}
	return s
}

// ResumeSecondHalf starts the second half from half-time. Each half
// counts from zero: minute and second reset.
func ResumeSecondHalf(s State) State {
	if s.Phase() != PhaseHalfTime {
		return s
	}
	s.HalfTime = false
	s.Period = PeriodSecond
	s.Running = true
	s.Minute = 0
	s.Second = 0
	return s
}

// CallFullTime stops the clock permanently from either second-half phase.
func CallFullTime(s State) State {
	switch s.Phase() {
	case PhaseSecondHalfRunning, PhaseSecondHalfPaused:
		s.FullTime = true
		s.Running = false
	}
	return s
}

// Reset returns to NOT_STARTED from any phase. Confirmation is the
// interaction layer's concern, not the engine's.
func Reset(State) State {
	return State{}
}

// AdjustMinute applies a manual correction while running or paused in a
// half. Floors at zero; no-op during half-time or full-time.
func AdjustMinute(s State, delta int) State {
	if !s.inHalf() {
		return s
	}
	s.Minute += delta
	if s.Minute < 0 {
		s.Minute = 0
	}
	return s
}

// Tick advances the clock by one second while running, rolling the
// minute over when seconds pass 59.
func Tick(s State) State {
	if !s.Running {
		return s
	}
	s.Second++
	if s.Second > 59 {
		s.Second = 0
		s.Minute++
	}
	return s
}
