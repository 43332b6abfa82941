package matchlog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func scoredGoal(minute int) domain.MatchEvent {
	return domain.MatchEvent{
		Type:           domain.EventGoal,
		Minute:         minute,
		GoalType:       domain.GoalScored,
		GoalContext:    domain.ContextOpenPlay,
		PlayerID:       ptr(uuid.New()),
		AssistPlayerID: ptr(uuid.New()),
	}
}

func concededGoal(minute int) domain.MatchEvent {
	return domain.MatchEvent{
		Type:        domain.EventGoal,
		Minute:      minute,
		GoalType:    domain.GoalConceded,
		GoalContext: domain.ContextOpenPlay,
	}
}

func TestValidate_UnknownEventType(t *testing.T) {
	err := Validate(&domain.MatchEvent{Type: "throw_in", Minute: 10})
	require.Error(t, err)
	assert.Equal(t, "INVALID_EVENT_TYPE", err.(*domain.AppError).Code)
}

func TestValidate_NegativeMinute(t *testing.T) {
	event := scoredGoal(0)
	event.Minute = -1
	require.Error(t, Validate(&event))
}

func TestValidate_AddedTimeMinuteAllowed(t *testing.T) {
	event := scoredGoal(97)
	require.NoError(t, Validate(&event))
}

func TestValidate_ScoredGoalAssistRules(t *testing.T) {
	t.Run("no assist and not own goal rejected", func(t *testing.T) {
		event := scoredGoal(12)
		event.AssistPlayerID = nil
		err := Validate(&event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assisting player")
	})

	t.Run("own goal needs no assist", func(t *testing.T) {
		event := scoredGoal(12)
		event.AssistPlayerID = nil
		event.IsOwnGoal = true
		require.NoError(t, Validate(&event))
	})

	t.Run("missing goal_type rejected", func(t *testing.T) {
		event := scoredGoal(12)
		event.GoalType = ""
		require.Error(t, Validate(&event))
	})

	t.Run("missing goal_context rejected", func(t *testing.T) {
		event := scoredGoal(12)
		event.GoalContext = ""
		require.Error(t, Validate(&event))
	})

	t.Run("conceded goal needs no players", func(t *testing.T) {
		event := concededGoal(30)
		require.NoError(t, Validate(&event))
	})
}

func TestValidate_Cards(t *testing.T) {
	event := domain.MatchEvent{Type: domain.EventYellowCard, Minute: 40, PlayerID: ptr(uuid.New())}
	require.NoError(t, Validate(&event))

	event.PlayerID = nil
	require.Error(t, Validate(&event))

	red := domain.MatchEvent{Type: domain.EventRedCard, Minute: 88, PlayerID: ptr(uuid.New())}
	require.NoError(t, Validate(&red))
}

func TestValidate_Substitution(t *testing.T) {
	in, out := uuid.New(), uuid.New()

	t.Run("valid", func(t *testing.T) {
		event := domain.MatchEvent{
			Type: domain.EventSubstitution, Minute: 60,
			PlayerInID: &in, PlayerOutID: &out, SubReason: domain.SubTactical,
		}
		require.NoError(t, Validate(&event))
	})

	t.Run("same player both ways rejected", func(t *testing.T) {
		event := domain.MatchEvent{
			Type: domain.EventSubstitution, Minute: 60,
			PlayerInID: &in, PlayerOutID: &in, SubReason: domain.SubInjury,
		}
		err := Validate(&event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})

	t.Run("missing outgoing player rejected", func(t *testing.T) {
		event := domain.MatchEvent{
			Type: domain.EventSubstitution, Minute: 60,
			PlayerInID: &in, SubReason: domain.SubFatigue,
		}
		require.Error(t, Validate(&event))
	})

	t.Run("missing reason rejected", func(t *testing.T) {
		event := domain.MatchEvent{
			Type: domain.EventSubstitution, Minute: 60,
			PlayerInID: &in, PlayerOutID: &out,
		}
		require.Error(t, Validate(&event))
	})
}

func TestDeriveScore(t *testing.T) {
	events := []domain.MatchEvent{
		scoredGoal(10),
		scoredGoal(25),
		concededGoal(40),
		{Type: domain.EventYellowCard, Minute: 50, PlayerID: ptr(uuid.New())},
	}

	score := DeriveScore(events)
	assert.Equal(t, 2, score.GoalsFor)
	assert.Equal(t, 1, score.GoalsAgainst)
}

func TestDiscipline(t *testing.T) {
	events := []domain.MatchEvent{
		{Type: domain.EventYellowCard, Minute: 20, PlayerID: ptr(uuid.New())},
		{Type: domain.EventYellowCard, Minute: 55, PlayerID: ptr(uuid.New())},
		{Type: domain.EventRedCard, Minute: 70, PlayerID: ptr(uuid.New())},
		scoredGoal(80),
	}

	yellows, reds := Discipline(events)
	assert.Equal(t, 2, yellows)
	assert.Equal(t, 1, reds)
}

func TestLog_RecordRejectsInvalidWithoutAppending(t *testing.T) {
	log := NewLog(uuid.New())

	bad := scoredGoal(5)
	bad.AssistPlayerID = nil
	_, err := log.Record(bad)
	require.Error(t, err)
	assert.Zero(t, log.Len(), "failed validation must not partially log")
}

func TestLog_TimelineOrderStableWithinMinute(t *testing.T) {
	sessionID := uuid.New()
	log := NewLog(sessionID)

	first := scoredGoal(44)
	second := concededGoal(44)
	third := scoredGoal(12)

	_, err := log.Record(first)
	require.NoError(t, err)
	_, err = log.Record(second)
	require.NoError(t, err)
	_, err = log.Record(third)
	require.NoError(t, err)

	timeline := log.Events()
	require.Len(t, timeline, 3)
	assert.Equal(t, 12, timeline[0].Minute)
	assert.Equal(t, 44, timeline[1].Minute)
	assert.Equal(t, domain.GoalScored, timeline[1].GoalType, "insertion order breaks the tie")
	assert.Equal(t, domain.GoalConceded, timeline[2].GoalType)
	assert.Equal(t, sessionID, timeline[0].SessionID)

	assert.Equal(t, domain.Score{GoalsFor: 2, GoalsAgainst: 1}, log.Score())
}
