// Package session composes the lineup, event log and timer for one
// session: gating event logging on lineup completeness, stamping the
// timer's minute onto new events, and deriving the status text.
package session

import (
	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/lineup"
	"github.com/pitchside/platform/internal/matchlog"
	"github.com/pitchside/platform/internal/timer"
)

// Status labels for the session header, derived from timer and score.
const (
	StatusStarted = "Started"
	StatusLeading = "Leading"
	StatusLosing  = "Losing"
	StatusLevel   = "Level"
)

// CheckLineup gates event logging on a complete starting lineup. Both
// the in-memory coordinator and the HTTP recording path go through it.
func CheckLineup(starters, required int) error {
	if starters != required {
		return domain.ErrLineupIncomplete(starters, required)
	}
	return nil
}

// StampMinute fills a negative minute with the timer's current minute.
// Negative means "not supplied"; zero is a real first-minute value.
func StampMinute(event *domain.MatchEvent, minute int) {
	if event.Minute < 0 {
		event.Minute = minute
	}
}

// Coordinator drives one session's match view.
type Coordinator struct {
	lineup *lineup.Manager
	log    *matchlog.Log
	clock  timer.State
}

// NewCoordinator composes a coordinator from its parts.
func NewCoordinator(lineupMgr *lineup.Manager, log *matchlog.Log) *Coordinator {
	return &Coordinator{lineup: lineupMgr, log: log}
}

// AttachTimer sets the current timer snapshot, typically freshly loaded
// from the timer store.
func (c *Coordinator) AttachTimer(state timer.State) {
	c.clock = state
}

// CurrentMinute exposes the timer's minute to the event form.
func (c *Coordinator) CurrentMinute() int {
	return c.clock.Minute
}

// LineupComplete reports whether the starter count matches the required
// squad size.
func (c *Coordinator) LineupComplete() bool {
	return c.lineup.IsComplete()
}

// RecordEvent validates and appends a match event. Events are refused
// with LINEUP_INCOMPLETE until the lineup is complete. A negative minute
// means "stamp the timer's current minute".
func (c *Coordinator) RecordEvent(event domain.MatchEvent) (*domain.MatchEvent, error) {
	if err := CheckLineup(c.lineup.StarterCount(), c.lineup.RequiredSize()); err != nil {
		return nil, err
	}
	StampMinute(&event, c.CurrentMinute())
	return c.log.Record(event)
}

// Score returns the event-log-derived score.
func (c *Coordinator) Score() domain.Score {
	return c.log.Score()
}

// Status derives the human status string. Empty until a half has
// started; "Started" while no goal has been scored; then a comparison of
// the derived score.
func (c *Coordinator) Status() string {
	return StatusText(c.clock.Started, c.log.Score())
}

// StatusText is the pure status derivation shared with the read path,
// which has raw events rather than a live coordinator.
func StatusText(started bool, score domain.Score) string {
	if !started {
		return ""
	}
	switch {
	case score.GoalsFor == 0 && score.GoalsAgainst == 0:
		return StatusStarted
	case score.GoalsFor > score.GoalsAgainst:
		return StatusLeading
	case score.GoalsFor < score.GoalsAgainst:
		return StatusLosing
	default:
		return StatusLevel
	}
}
