package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Ticker advances running timers one second per real second, persisting
// after every tick. One goroutine runs per ticking session; the loop
// parks itself when the clock stops and is re-ensured on the next start.
type Ticker struct {
	store  Store
	clock  clockwork.Clock
	logger *slog.Logger

	mu      sync.Mutex
	cancels map[uuid.UUID]*tickLoop
}

type tickLoop struct {
	cancel context.CancelFunc
}

// NewTicker creates a ticker over the given store and clock.
func NewTicker(store Store, clock clockwork.Clock, logger *slog.Logger) *Ticker {
	return &Ticker{
		store:   store,
		clock:   clock,
		logger:  logger,
		cancels: make(map[uuid.UUID]*tickLoop),
	}
}

// Ensure starts a tick loop for the session if one is not already
// running. Safe to call on every start/resume transition.
func (t *Ticker) Ensure(ctx context.Context, sessionID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, running := t.cancels[sessionID]; running {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	loop := &tickLoop{cancel: cancel}
	t.cancels[sessionID] = loop
	go t.run(loopCtx, sessionID, loop)
}

// Stop tears down the tick loop for a session, if any.
func (t *Ticker) Stop(sessionID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if loop, ok := t.cancels[sessionID]; ok {
		loop.cancel()
		delete(t.cancels, sessionID)
	}
}

// Active returns the number of tick loops currently running.
func (t *Ticker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cancels)
}

// StopAll tears down every tick loop.
func (t *Ticker) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, loop := range t.cancels {
		loop.cancel()
		delete(t.cancels, id)
	}
}

func (t *Ticker) run(ctx context.Context, sessionID uuid.UUID, self *tickLoop) {
	// Remove only this loop's entry: a Stop/Ensure pair may already
	// have registered a successor under the same session.
	defer func() {
		t.mu.Lock()
		if t.cancels[sessionID] == self {
			delete(t.cancels, sessionID)
		}
		t.mu.Unlock()
	}()

	ticker := t.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			state, _, err := t.store.Load(ctx, sessionID)
			if err != nil {
				t.logger.Error("timer tick load failed", "session_id", sessionID, "error", err)
				continue
			}
			if !state.Running {
				// Paused, half-time, full-time or reset: park until
				// the next start transition re-ensures the loop.
				return
			}
			next := Tick(state)
			if err := t.store.Save(ctx, sessionID, next); err != nil {
				t.logger.Error("timer tick save failed", "session_id", sessionID, "error", err)
			}
		}
	}
}
