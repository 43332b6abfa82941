package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRatingValue(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"not assessed", 0, false},
		{"minimum assessed", 1, false},
		{"maximum", 5, false},
		{"negative", -1, true},
		{"above range", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRatingValue(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "between 0 and 5")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, ValidCategory(c), string(c))
	}
	assert.False(t, ValidCategory("dribbling"))
	assert.False(t, ValidCategory(""))
	assert.Len(t, Categories(), 8)
}

func TestEnumValidators(t *testing.T) {
	require.NoError(t, ValidateSessionKind(KindTraining))
	require.NoError(t, ValidateSessionKind(KindMatch))
	require.Error(t, ValidateSessionKind("friendly"))

	require.NoError(t, ValidateVenue(VenueHome))
	require.NoError(t, ValidateVenue(VenueNeutral))
	require.Error(t, ValidateVenue("abroad"))

	require.NoError(t, ValidateAttendanceStatus(AttendancePresent))
	require.Error(t, ValidateAttendanceStatus("late"))

	require.NoError(t, ValidateLineupRole(RoleStarter))
	require.NoError(t, ValidateLineupRole(RoleSub))
	require.Error(t, ValidateLineupRole("bench"))
}

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := ErrNotFound("session", "abc-123")
		assert.Equal(t, "NOT_FOUND: session abc-123 not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := ErrInternal("database error", cause)
		assert.Contains(t, err.Error(), "INTERNAL_ERROR")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrDependency("wrapped", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestErrorFactories(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"ErrNotFound", ErrNotFound("player", "123"), "NOT_FOUND", 404},
		{"ErrConflict", ErrConflict("already exists"), "CONFLICT", 409},
		{"ErrValidation", ErrValidation("bad input"), "VALIDATION_ERROR", 400},
		{"ErrUnauthorized", ErrUnauthorized("no token"), "UNAUTHORIZED", 401},
		{"ErrForbidden", ErrForbidden("not allowed"), "FORBIDDEN", 403},
		{"ErrRosterFull", ErrRosterFull(7), "ROSTER_FULL", 409},
		{"ErrLineupIncomplete", ErrLineupIncomplete(6, 7), "LINEUP_INCOMPLETE", 409},
		{"ErrInvalidEventType", ErrInvalidEventType("throw_in"), "INVALID_EVENT_TYPE", 400},
		{"ErrDependency", ErrDependency("broker down", nil), "DEPENDENCY_FAILURE", 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.Status)
		})
	}
}
