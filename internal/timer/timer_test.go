package timer

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroStateIsNotStarted(t *testing.T) {
	assert.Equal(t, PhaseNotStarted, State{}.Phase())
}

func TestStart_FirstHalf(t *testing.T) {
	s := Start(State{})
	assert.Equal(t, PhaseFirstHalfRunning, s.Phase())
	assert.Equal(t, PeriodFirst, s.Period)
	assert.Zero(t, s.Minute)
	assert.Zero(t, s.Second)
}

func TestTick_SecondRollover(t *testing.T) {
	s := Start(State{})
	for i := 0; i < 61; i++ {
		s = Tick(s)
	}
	assert.Equal(t, 1, s.Minute)
	assert.Equal(t, 1, s.Second)
}

func TestTick_NoOpWhilePaused(t *testing.T) {
	s := Pause(Start(State{}))
	ticked := Tick(s)
	assert.Equal(t, s, ticked)
}

func TestPauseResume(t *testing.T) {
	s := Start(State{})
	s = Pause(s)
	assert.Equal(t, PhaseFirstHalfPaused, s.Phase())

	s = Start(s)
	assert.Equal(t, PhaseFirstHalfRunning, s.Phase())

	// Pause outside a running phase is a no-op.
	assert.Equal(t, State{}, Pause(State{}))
}

func TestHalfTimeAndSecondHalf(t *testing.T) {
	s := Start(State{})
	for i := 0; i < 60*25; i++ {
		s = Tick(s)
	}
	require.Equal(t, 25, s.Minute)

	s = CallHalfTime(s)
	assert.Equal(t, PhaseHalfTime, s.Phase())
	assert.False(t, s.Running)

	// The clock does not run during half-time.
	assert.Equal(t, s, Tick(s))

	s = ResumeSecondHalf(s)
	assert.Equal(t, PhaseSecondHalfRunning, s.Phase())
	assert.Equal(t, PeriodSecond, s.Period)
	assert.Zero(t, s.Minute, "each half counts from zero")
	assert.Zero(t, s.Second)
}

func TestCallHalfTime_FromPaused(t *testing.T) {
	s := CallHalfTime(Pause(Start(State{})))
	assert.Equal(t, PhaseHalfTime, s.Phase())
}

func TestCallHalfTime_InvalidPhasesNoOp(t *testing.T) {
	secondHalf := ResumeSecondHalf(CallHalfTime(Start(State{})))
	assert.Equal(t, secondHalf, CallHalfTime(secondHalf))
	assert.Equal(t, State{}, CallHalfTime(State{}))
}

func TestCallFullTime(t *testing.T) {
	s := ResumeSecondHalf(CallHalfTime(Start(State{})))
	s = CallFullTime(s)
	assert.Equal(t, PhaseFullTime, s.Phase())
	assert.False(t, s.Running)

	// Full time is permanent: start and tick are no-ops.
	assert.Equal(t, s, Start(s))
	assert.Equal(t, s, Tick(s))

	// But not during the first half.
	firstHalf := Start(State{})
	assert.Equal(t, firstHalf, CallFullTime(firstHalf))
}

func TestReset_FromAnyPhase(t *testing.T) {
	s := CallFullTime(ResumeSecondHalf(CallHalfTime(Start(State{}))))
	require.Equal(t, PhaseFullTime, s.Phase())

	assert.Equal(t, PhaseNotStarted, Reset(s).Phase())
	assert.Equal(t, State{}, Reset(s))
}

func TestAdjustMinute(t *testing.T) {
	s := Start(State{})
	s = AdjustMinute(s, 1)
	assert.Equal(t, 1, s.Minute)

	s = AdjustMinute(s, -1)
	s = AdjustMinute(s, -1)
	assert.Zero(t, s.Minute, "floors at zero")

	ht := CallHalfTime(Start(State{}))
	assert.Equal(t, ht, AdjustMinute(ht, 1), "no corrections during half-time")
}

func TestEngine_ApplyPersistsEveryTransition(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store)
	ctx := context.Background()
	sessionID := uuid.New()

	state, err := engine.Apply(ctx, sessionID, ActionStart)
	require.NoError(t, err)
	assert.Equal(t, PhaseFirstHalfRunning, state.Phase())

	// Re-attaching loads the persisted state, not NOT_STARTED.
	loaded, found, err := store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, state, loaded)

	state, err = engine.Apply(ctx, sessionID, ActionHalfTime)
	require.NoError(t, err)
	assert.Equal(t, PhaseHalfTime, state.Phase())

	state, err = engine.Apply(ctx, sessionID, ActionSecondHalf)
	require.NoError(t, err)
	assert.Equal(t, PhaseSecondHalfRunning, state.Phase())

	_, err = engine.Apply(ctx, sessionID, "rewind")
	require.Error(t, err)
}

func TestTicker_AdvancesAndPersists(t *testing.T) {
	store := NewMemoryStore()
	clock := clockwork.NewFakeClock()
	ticker := NewTicker(store, clock, slog.Default())
	defer ticker.StopAll()

	ctx := context.Background()
	sessionID := uuid.New()
	require.NoError(t, store.Save(ctx, sessionID, Start(State{})))

	ticker.Ensure(ctx, sessionID)
	clock.BlockUntil(1)
	clock.Advance(time.Second)

	require.Eventually(t, func() bool {
		state, _, err := store.Load(ctx, sessionID)
		return err == nil && state.Second == 1
	}, time.Second, time.Millisecond)

	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		state, _, err := store.Load(ctx, sessionID)
		return err == nil && state.Second == 2
	}, time.Second, time.Millisecond)
}

func TestTicker_ParksWhenStopped(t *testing.T) {
	store := NewMemoryStore()
	clock := clockwork.NewFakeClock()
	ticker := NewTicker(store, clock, slog.Default())
	defer ticker.StopAll()

	ctx := context.Background()
	sessionID := uuid.New()
	require.NoError(t, store.Save(ctx, sessionID, Pause(Start(State{}))))

	ticker.Ensure(ctx, sessionID)
	clock.BlockUntil(1)
	clock.Advance(time.Second)

	// The loop observes a stopped clock and parks without advancing.
	require.Eventually(t, func() bool {
		ticker.mu.Lock()
		defer ticker.mu.Unlock()
		return len(ticker.cancels) == 0
	}, time.Second, time.Millisecond)

	state, _, err := store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Zero(t, state.Second)
}
