// Package matchlog owns the append-only match event timeline and the
// score derived from it. Validation happens before any append; an event
// that fails validation is never partially logged.
package matchlog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
)

// Validate checks a match event against the recording rules. It is the
// single gate used by both the in-memory log and the persistence path.
func Validate(event *domain.MatchEvent) error {
	if event.Minute < 0 {
		return domain.ErrValidation("minute must not be negative")
	}

	switch event.Type {
	case domain.EventGoal:
		return validateGoal(event)
	case domain.EventYellowCard, domain.EventRedCard:
		if event.PlayerID == nil {
			return domain.ErrValidation("card events require the carded player")
		}
		return nil
	case domain.EventSubstitution:
		return validateSubstitution(event)
	default:
		return domain.ErrInvalidEventType(string(event.Type))
	}
}

func validateGoal(event *domain.MatchEvent) error {
	switch event.GoalType {
	case domain.GoalScored, domain.GoalConceded:
	default:
		return domain.ErrValidation("goal events require goal_type scored or conceded")
	}

	switch event.GoalContext {
	case domain.ContextOpenPlay, domain.ContextFreeKick, domain.ContextCorner,
		domain.ContextPenalty, domain.ContextOther:
	default:
		return domain.ErrValidation("goal events require a goal_context")
	}

	if event.GoalType == domain.GoalScored && !event.IsOwnGoal {
		if event.PlayerID == nil {
			return domain.ErrValidation("scored goals require the scoring player")
		}
		if event.AssistPlayerID == nil {
			return domain.ErrValidation("scored goals require an assisting player unless an own goal")
		}
	}
	return nil
}

func validateSubstitution(event *domain.MatchEvent) error {
	if event.PlayerInID == nil || event.PlayerOutID == nil {
		return domain.ErrValidation("substitutions require both an incoming and an outgoing player")
	}
	if *event.PlayerInID == *event.PlayerOutID {
		return domain.ErrValidation("incoming and outgoing player must differ")
	}
	switch event.SubReason {
	case domain.SubInjury, domain.SubTactical, domain.SubYellowCard,
		domain.SubFatigue, domain.SubOther:
		return nil
	default:
		return domain.ErrValidation("substitutions require a sub_reason")
	}
}

// DeriveScore counts scored and conceded goal events. This is the single
// source of truth for the live score; any cached scoreboard field is a
// display copy of this value.
func DeriveScore(events []domain.MatchEvent) domain.Score {
	var score domain.Score
	for _, e := range events {
		if e.Type != domain.EventGoal {
			continue
		}
		switch e.GoalType {
		case domain.GoalScored:
			score.GoalsFor++
		case domain.GoalConceded:
			score.GoalsAgainst++
		}
	}
	return score
}

// Discipline counts card events by color.
func Discipline(events []domain.MatchEvent) (yellows, reds int) {
	for _, e := range events {
		switch e.Type {
		case domain.EventYellowCard:
			yellows++
		case domain.EventRedCard:
			reds++
		}
	}
	return yellows, reds
}

// SortTimeline orders events by minute ascending, preserving insertion
// order within the same minute.
func SortTimeline(events []domain.MatchEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Minute < events[j].Minute
	})
}

// Log is the in-memory append-only event collection for one session.
type Log struct {
	sessionID uuid.UUID
	events    []domain.MatchEvent
}

// NewLog creates an empty log for a session.
func NewLog(sessionID uuid.UUID) *Log {
	return &Log{sessionID: sessionID}
}

// Record validates and appends an event. The stored copy is stamped with
// the log's session ID.
func (l *Log) Record(event domain.MatchEvent) (*domain.MatchEvent, error) {
	if err := Validate(&event); err != nil {
		return nil, err
	}
	event.SessionID = l.sessionID
	l.events = append(l.events, event)
	return &l.events[len(l.events)-1], nil
}

// Events returns the timeline ordered by minute ascending with a stable
// insertion-order tie-break.
func (l *Log) Events() []domain.MatchEvent {
	out := make([]domain.MatchEvent, len(l.events))
	copy(out, l.events)
	SortTimeline(out)
	return out
}

// Score returns the derived score over all recorded events.
func (l *Log) Score() domain.Score {
	return DeriveScore(l.events)
}

// Len returns the number of recorded events.
func (l *Log) Len() int { return len(l.events) }
