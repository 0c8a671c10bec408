package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"matchday-tracker/internal/config"
	"matchday-tracker/internal/constants"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Kind string

const (
	MatchRecorded Kind = "match.recorded"
	MatchScored   Kind = "match.scored"
	MatchDeleted  Kind = "match.deleted"
	TeamsSynced   Kind = "teams.synced"
)

// Event tells listeners that the history changed and derived views should
// be recomputed.
type Event struct {
	Kind    Kind      `json:"kind"`
	MatchID string    `json:"match_id,omitempty"`
	At      time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// RedisStreamPublisher appends events to a Redis stream.
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
}

func NewRedisStreamPublisher(client *redis.Client, stream string) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client, stream: stream}
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"kind":      string(event.Kind),
			"data":      string(data),
			"timestamp": event.At.Unix(),
		},
	}).Err()
}

// New returns a stream publisher when REDIS_URL is set and a no-op
// publisher otherwise.
func New(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (Publisher, error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("REDIS_URL not set, match events disabled")
		return NopPublisher{}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opt.DialTimeout = constants.RedisDialTimeout
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	logger.Info().Str("stream", cfg.MatchEventsStream).Msg("publishing match events to redis")
	return NewRedisStreamPublisher(client, cfg.MatchEventsStream), nil
}

var Module = fx.Provide(New)
