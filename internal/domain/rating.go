package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is one of the 8 fixed development rating categories.
type Category string

const (
	CategoryBallControl  Category = "ball_control"
	CategoryPassing      Category = "passing"
	CategoryShooting     Category = "shooting"
	CategoryFitness      Category = "fitness"
	CategoryAttitude     Category = "attitude"
	CategoryCoachability Category = "coachability"
	CategoryPositioning  Category = "positioning"
	CategorySpeedAgility Category = "speed_agility"
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryBallControl,
		CategoryPassing,
		CategoryShooting,
		CategoryFitness,
		CategoryAttitude,
		CategoryCoachability,
		CategoryPositioning,
		CategorySpeedAgility,
	}
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// RatingEntry is one coach's 0-5 score for one player, session and
// category. 0 means "not assessed" and is excluded from every average.
// Unique per (session, player, coach, category); a coach overwrites
// their own entry but never another coach's.
type RatingEntry struct {
	SessionID uuid.UUID `json:"session_id"`
	PlayerID  uuid.UUID `json:"player_id"`
	CoachID   uuid.UUID `json:"coach_id"`
	Category  Category  `json:"category"`
	Value     int       `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateRatingValue checks the 0-5 range (0 = not assessed).
func ValidateRatingValue(v int) error {
	if v < 0 || v > 5 {
		return ErrValidation("rating value must be between 0 and 5")
	}
	return nil
}
