package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchEventType enumerates the recordable in-match events.
type MatchEventType string

const (
	EventGoal         MatchEventType = "goal"
	EventYellowCard   MatchEventType = "yellow_card"
	EventRedCard      MatchEventType = "red_card"
	EventSubstitution MatchEventType = "substitution"
)

// GoalType says whether a goal was scored by us or conceded.
type GoalType string

const (
	GoalScored   GoalType = "scored"
	GoalConceded GoalType = "conceded"
)

// GoalContext classifies how a goal came about.
type GoalContext string

const (
	ContextOpenPlay GoalContext = "open_play"
	ContextFreeKick GoalContext = "free_kick"
	ContextCorner   GoalContext = "corner"
	ContextPenalty  GoalContext = "penalty"
	ContextOther    GoalContext = "other"
)

// SubReason classifies why a substitution was made.
type SubReason string

const (
	SubInjury     SubReason = "injury"
	SubTactical   SubReason = "tactical"
	SubYellowCard SubReason = "yellow_card"
	SubFatigue    SubReason = "fatigue"
	SubOther      SubReason = "other"
)

// MatchEvent is one append-only record in a session's match timeline.
// Events are never edited or deleted once recorded; ordering is by
// minute ascending with insertion order as the tie-break.
type MatchEvent struct {
	ID        int64          `json:"id"`
	SessionID uuid.UUID      `json:"session_id"`
	Type      MatchEventType `json:"event_type"`
	Minute    int            `json:"minute"`

	// Acting player: scorer for goals, carded player for cards.
	PlayerID *uuid.UUID `json:"player_id,omitempty"`

	// Goal fields.
	GoalType       GoalType    `json:"goal_type,omitempty"`
	GoalContext    GoalContext `json:"goal_context,omitempty"`
	IsOwnGoal      bool        `json:"is_own_goal,omitempty"`
	AssistPlayerID *uuid.UUID  `json:"assist_player_id,omitempty"`

	// Substitution fields.
	PlayerInID  *uuid.UUID `json:"player_in_id,omitempty"`
	PlayerOutID *uuid.UUID `json:"player_out_id,omitempty"`
	SubReason   SubReason  `json:"sub_reason,omitempty"`

	// Card fields.
	CardReason string `json:"card_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Score is the event-log-derived match score, authoritative over any
// cached scoreboard field.
type Score struct {
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}
