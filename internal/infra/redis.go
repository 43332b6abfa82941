package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pitchside/platform/internal/timer"
)

// NewRedisClient creates a Redis client from the configured URL and pings it.
func NewRedisClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// timerTTL bounds how long an abandoned timer survives. A match is well
// under three hours; a day covers reconnects after the final whistle.
const timerTTL = 24 * time.Hour

// RedisTimerStore persists match timer state in Redis keyed by session.
// Every transition and tick overwrites the full state, so any instance
// handling the next request reads the current clock.
type RedisTimerStore struct {
	client *redis.Client
}

var _ timer.Store = (*RedisTimerStore)(nil)

// NewRedisTimerStore creates a timer store backed by the given client.
func NewRedisTimerStore(client *redis.Client) *RedisTimerStore {
	return &RedisTimerStore{client: client}
}

func timerKey(sessionID uuid.UUID) string {
	return "timer:" + sessionID.String()
}

// Load reads the timer state for a session. Returns found=false when the
// session has no persisted timer yet.
func (s *RedisTimerStore) Load(ctx context.Context, sessionID uuid.UUID) (timer.State, bool, error) {
	raw, err := s.client.Get(ctx, timerKey(sessionID)).Bytes()
	if err == redis.Nil {
		return timer.State{}, false, nil
	}
	if err != nil {
		return timer.State{}, false, fmt.Errorf("load timer %s: %w", sessionID, err)
	}

	var state timer.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return timer.State{}, false, fmt.Errorf("decode timer %s: %w", sessionID, err)
	}
	return state, true, nil
}

// Save writes the timer state for a session.
func (s *RedisTimerStore) Save(ctx context.Context, sessionID uuid.UUID, state timer.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode timer %s: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, timerKey(sessionID), raw, timerTTL).Err(); err != nil {
		return fmt.Errorf("save timer %s: %w", sessionID, err)
	}
	return nil
}
