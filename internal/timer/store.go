package timer

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
)

// Store persists timer state per session so that re-attaching a view
// resumes from the last known state instead of NOT_STARTED.
type Store interface {
	// Load returns the state for a session. A session with no saved
	// state loads as the zero (NOT_STARTED) state with found=false.
	Load(ctx context.Context, sessionID uuid.UUID) (State, bool, error)

	// Save persists the full state, superseding any previous value.
	Save(ctx context.Context, sessionID uuid.UUID, state State) error
}

// Action names a timer transition requested over the boundary.
type Action string

const (
	ActionStart      Action = "start"
	ActionPause      Action = "pause"
	ActionHalfTime   Action = "half-time"
	ActionSecondHalf Action = "second-half"
	ActionFullTime   Action = "full-time"
	ActionReset      Action = "reset"
	ActionMinuteUp   Action = "minute-up"
	ActionMinuteDown Action = "minute-down"
)

// Engine applies named transitions against the stored state, persisting
// after every transition.
type Engine struct {
	store Store
}

// NewEngine creates a timer engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Current loads the state for a session.
func (e *Engine) Current(ctx context.Context, sessionID uuid.UUID) (State, error) {
	state, _, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, domain.ErrDependency("load timer state", err)
	}
	return state, nil
}

// Apply runs one named transition and persists the result.
func (e *Engine) Apply(ctx context.Context, sessionID uuid.UUID, action Action) (State, error) {
	state, _, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, domain.ErrDependency("load timer state", err)
	}

	switch action {
	case ActionStart:
		state = Start(state)
	case ActionPause:
		state = Pause(state)
	case ActionHalfTime:
		state = CallHalfTime(state)
	case ActionSecondHalf:
		state = ResumeSecondHalf(state)
	case ActionFullTime:
		state = CallFullTime(state)
	case ActionReset:
		state = Reset(state)
	case ActionMinuteUp:
		state = AdjustMinute(state, 1)
	case ActionMinuteDown:
		state = AdjustMinute(state, -1)
	default:
		return State{}, domain.ErrValidation("unknown timer action: " + string(action))
	}

	if err := e.store.Save(ctx, sessionID, state); err != nil {
		return State{}, domain.ErrDependency("save timer state", err)
	}
	return state, nil
}

// MemoryStore is an in-process Store, used in tests and as a fallback
// when no external store is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[uuid.UUID]State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[uuid.UUID]State)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID uuid.UUID) (State, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sessionID]
	return state, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID uuid.UUID, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
	return nil
}
