package live

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	relayPublishTimeout = 2 * time.Second
	// relayOutboxSize bounds changes waiting to be forwarded to Redis.
	relayOutboxSize = 64
)

// relayMessage is the payload exchanged between replicas.
type relayMessage struct {
	Origin string `json:"origin"`
	Topic  Topic  `json:"topic"`
}

// RedisRelay publishes changes to the local hub and to a Redis channel,
// and replays changes made by other replicas into the local hub.
type RedisRelay struct {
	hub     *Hub
	client  *redis.Client
	channel string
	origin  string
	outbox  chan Topic
	logger  zerolog.Logger
}

// NewRedisRelay creates a relay over hub using channel for cross-replica fan-out.
func NewRedisRelay(hub *Hub, client *redis.Client, channel string, logger zerolog.Logger) *RedisRelay {
	origin := uuid.NewString()
	return &RedisRelay{
		hub:     hub,
		client:  client,
		channel: channel,
		origin:  origin,
		outbox:  make(chan Topic, relayOutboxSize),
		logger: logger.With().
			Str("component", "redis-relay").
			Str("origin", origin).
			Logger(),
	}
}

// Publish signals local subscribers and queues the change for other
// replicas. It never waits on Redis: the queue is drained by Run, and a
// change is dropped with a warning when the queue is full.
func (r *RedisRelay) Publish(topic Topic) {
	r.hub.Publish(topic)

	select {
	case r.outbox <- topic:
	default:
		r.logger.Warn().Str("topic", string(topic)).Msg("relay queue full, change not forwarded")
	}
}

// Subscribe subscribes to the local hub.
func (r *RedisRelay) Subscribe(topic Topic) *Subscription {
	return r.hub.Subscribe(topic)
}

// Run forwards queued local changes to Redis and receives changes from
// other replicas until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		r.forward(ctx)
	}()
	defer func() {
		cancel()
		<-forwarded
	}()

	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		r.logger.Error().Err(err).Str("channel", r.channel).Msg("failed to subscribe to change channel")
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	r.logger.Info().Str("channel", r.channel).Msg("relaying changes")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.handle(msg.Payload)
		}
	}
}

func (r *RedisRelay) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case topic := <-r.outbox:
			r.send(ctx, topic)
		}
	}
}

func (r *RedisRelay) send(ctx context.Context, topic Topic) {
	data, err := json.Marshal(relayMessage{Origin: r.origin, Topic: topic})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to encode change")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, relayPublishTimeout)
	defer cancel()

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.logger.Warn().Err(err).Str("topic", string(topic)).Msg("failed to relay change")
	}
}

func (r *RedisRelay) handle(payload string) {
	var msg relayMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		r.logger.Warn().Err(err).Msg("ignoring malformed change message")
		return
	}

	if msg.Origin == r.origin {
		return
	}

	r.hub.Publish(msg.Topic)
}
