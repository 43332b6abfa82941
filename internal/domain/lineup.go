package domain

import "github.com/google/uuid"

// LineupRole is the role of a player within a match lineup.
type LineupRole string

const (
	RoleStarter LineupRole = "starter"
	RoleSub     LineupRole = "sub"
)

// LineupEntry places one player in a session's lineup.
// Shirt-number uniqueness is deliberately not enforced.
type LineupEntry struct {
	SessionID   uuid.UUID  `json:"session_id"`
	PlayerID    uuid.UUID  `json:"player_id"`
	Role        LineupRole `json:"role"`
	Position    string     `json:"position,omitempty"`
	ShirtNumber *int       `json:"shirt_number,omitempty"`
	IsCaptain   bool       `json:"is_captain"`
}

// ValidateLineupRole checks the lineup role enum.
func ValidateLineupRole(r LineupRole) error {
	switch r {
	case RoleStarter, RoleSub:
		return nil
	}
	return ErrValidation("lineup role must be starter or sub")
}
