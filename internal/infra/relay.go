package infra

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pitchside/platform/internal/domain"
)

// LiveRelay consumes match event topics from Kafka and rebroadcasts them
// into the local WebSocket hub. With Kafka enabled, every API instance
// relays every instance's events, so viewers can attach anywhere. Each
// instance joins its own consumer group to receive the full stream.
type LiveRelay struct {
	events *KafkaConsumer
	scores *KafkaConsumer
	hub    *LiveHub
	logger *slog.Logger
}

// NewLiveRelay builds a relay reading the match event and score topics.
func NewLiveRelay(cfg *Config, hub *LiveHub, logger *slog.Logger) *LiveRelay {
	group := "pitchside-live-" + uuid.NewString()
	return &LiveRelay{
		events: NewKafkaConsumer(cfg.KafkaBrokers, string(domain.EventMatchEventRecorded), group, cfg.KafkaEnabled, logger),
		scores: NewKafkaConsumer(cfg.KafkaBrokers, string(domain.EventScoreChanged), group, cfg.KafkaEnabled, logger),
		hub:    hub,
		logger: logger,
	}
}

// Enabled reports whether the relay has live consumers.
func (r *LiveRelay) Enabled() bool {
	return r.events.Enabled()
}

// Start launches one consume loop per topic. Loops exit when ctx is cancelled.
func (r *LiveRelay) Start(ctx context.Context) {
	if !r.Enabled() {
		return
	}
	r.logger.Info("live relay started")
	go r.consume(ctx, r.events, "match.event")
	go r.consume(ctx, r.scores, "match.score")
}

// envelope mirrors the JSON the outbox poller publishes.
type envelope struct {
	AggregateID string          `json:"aggregate_id"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
}

func (r *LiveRelay) consume(ctx context.Context, consumer *KafkaConsumer, event string) {
	defer func() { _ = consumer.Close() }()

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Error("relay read error", "event", event, "error", err)
			continue
		}

		var env envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			r.logger.Warn("relay decode error", "event", event, "error", err)
			continue
		}

		sessionID, err := uuid.Parse(env.AggregateID)
		if err != nil {
			r.logger.Warn("relay bad aggregate id", "event", event, "aggregate_id", env.AggregateID)
			continue
		}

		r.hub.publish(sessionID, event, env.Payload)
	}
}

// Close shuts down both consumers.
func (r *LiveRelay) Close() error {
	err := r.events.Close()
	if cerr := r.scores.Close(); err == nil {
		err = cerr
	}
	return err
}
