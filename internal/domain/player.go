package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team is one age-group squad within the club.
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AgeGroup  string    `json:"age_group"` // e.g. "U12"
	CreatedAt time.Time `json:"created_at"`
}

// Player is a roster member, owned by the club-wide roster and
// referenced (never owned) by sessions.
type Player struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
