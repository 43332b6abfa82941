package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all outbox event types.
type EventType string

const (
	EventSessionCreated     EventType = "pitchside.session.created"
	EventLineupReplaced     EventType = "pitchside.lineup.replaced"
	EventMatchEventRecorded EventType = "pitchside.match.event.recorded"
	EventScoreChanged       EventType = "pitchside.match.score.changed"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateSession AggregateType = "session"
	AggregateMatch   AggregateType = "match"
)

// OutboxDraft is the payload written to the event_outbox table. Rows are
// inserted in the same transaction as the write they describe and published
// to the broker by the live-publisher binary.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"eventId"`
	AggregateType AggregateType   `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     EventType       `json:"eventType"`
	PartitionKey  string          `json:"partitionKey"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// NewMatchEventRecorded builds the outbox draft for a freshly recorded
// match event.
func NewMatchEventRecorded(event *MatchEvent) OutboxDraft {
	payload, _ := json.Marshal(event)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateMatch,
		AggregateID:   event.SessionID.String(),
		EventType:     EventMatchEventRecorded,
		PartitionKey:  event.SessionID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewScoreChanged builds the outbox draft announcing a new derived score.
func NewScoreChanged(sessionID uuid.UUID, score Score) OutboxDraft {
	payload, _ := json.Marshal(score)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateMatch,
		AggregateID:   sessionID.String(),
		EventType:     EventScoreChanged,
		PartitionKey:  sessionID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewSessionCreated builds the outbox draft for a new session.
func NewSessionCreated(session *Session) OutboxDraft {
	payload, _ := json.Marshal(session)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateSession,
		AggregateID:   session.ID.String(),
		EventType:     EventSessionCreated,
		PartitionKey:  session.TeamID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewLineupReplaced builds the outbox draft for a committed lineup.
func NewLineupReplaced(sessionID uuid.UUID, starters int) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{"starters": starters})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateSession,
		AggregateID:   sessionID.String(),
		EventType:     EventLineupReplaced,
		PartitionKey:  sessionID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
