package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionKind distinguishes training sessions from matches.
type SessionKind string

const (
	KindTraining SessionKind = "training"
	KindMatch    SessionKind = "match"
)

// Venue classifies where a match is played.
type Venue string

const (
	VenueHome    Venue = "home"
	VenueAway    Venue = "away"
	VenueNeutral Venue = "neutral"
)

// Session is one team activity on a calendar date.
type Session struct {
	ID        uuid.UUID   `json:"id"`
	TeamID    uuid.UUID   `json:"team_id"`
	Date      time.Time   `json:"date"`
	Kind      SessionKind `json:"kind"`
	Theme     string      `json:"theme,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// MatchDetails holds the match metadata for a match-kind session.
// GoalsFor/GoalsAgainst are a display cache refreshed from the event log;
// the event-log-derived score is authoritative.
type MatchDetails struct {
	SessionID    uuid.UUID `json:"session_id"`
	Opposition   string    `json:"opposition"`
	Venue        Venue     `json:"venue"`
	VenueName    string    `json:"venue_name,omitempty"`
	Competition  string    `json:"competition,omitempty"`
	Formation    string    `json:"formation,omitempty"`
	GoalsFor     int       `json:"goals_for"`
	GoalsAgainst int       `json:"goals_against"`
}

// AttendanceStatus marks a player present or absent. The absence of a
// record means "not yet marked", which is distinct from absent.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord is the upsert target keyed by (session, player).
type AttendanceRecord struct {
	SessionID uuid.UUID        `json:"session_id"`
	PlayerID  uuid.UUID        `json:"player_id"`
	Status    AttendanceStatus `json:"status"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ValidateSessionKind checks the session kind enum.
func ValidateSessionKind(k SessionKind) error {
	switch k {
	case KindTraining, KindMatch:
		return nil
	}
	return ErrValidation("session kind must be training or match")
}

// ValidateVenue checks the venue enum.
func ValidateVenue(v Venue) error {
	switch v {
	case VenueHome, VenueAway, VenueNeutral:
		return nil
	}
	return ErrValidation("venue must be home, away or neutral")
}

// ValidateAttendanceStatus checks the attendance enum.
func ValidateAttendanceStatus(s AttendanceStatus) error {
	switch s {
	case AttendancePresent, AttendanceAbsent:
		return nil
	}
	return ErrValidation("attendance status must be present or absent")
}
