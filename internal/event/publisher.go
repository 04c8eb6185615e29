package event

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/rueidis"
)

// envelopeField is the stream entry field carrying the envelope JSON.
const envelopeField = "data"

// ReplyPublisher publishes reply envelopes to the fixed reply channel.
// Publishing is fire-and-forget: the outcome is logged, never retried or
// fed back into the reply itself.
type ReplyPublisher interface {
	Publish(ctx context.Context, envelope *Envelope)
}

// RedisReplyPublisher implements ReplyPublisher using Redis Streams.
type RedisReplyPublisher struct {
	redisClient rueidis.Client
	stream      string
}

// NewRedisReplyPublisher creates a new Redis Streams reply publisher.
func NewRedisReplyPublisher(redisClient rueidis.Client, stream string) *RedisReplyPublisher {
	return &RedisReplyPublisher{
		redisClient: redisClient,
		stream:      stream,
	}
}

// Publish appends the envelope to the reply stream.
func (p *RedisReplyPublisher) Publish(ctx context.Context, envelope *Envelope) {
	body, err := json.Marshal(envelope)
	if err != nil {
		slog.Error("failed to marshal reply envelope",
			slog.String("event_type", envelope.EventType),
			slog.String("error", err.Error()),
		)

		return
	}

	cmd := p.redisClient.B().Xadd().Key(p.stream).Id("*").
		FieldValue().FieldValue(envelopeField, string(body)).
		Build()

	if err := p.redisClient.Do(ctx, cmd).Error(); err != nil {
		slog.Error("failed to publish reply",
			slog.String("event_type", envelope.EventType),
			slog.String("stream", p.stream),
			slog.String("error", err.Error()),
		)

		return
	}

	slog.Info("reply published",
		slog.String("event_type", envelope.EventType),
		slog.String("stream", p.stream),
	)
}
