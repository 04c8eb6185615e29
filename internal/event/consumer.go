package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/rueidis"
)

const (
	redisBlockTimeout = 1000 // milliseconds
	readBatchSize     = 10
	errorRetryDelay   = 1 * time.Second
)

// Consumer reads request envelopes from the input stream through a consumer
// group and hands them to a bounded worker pool, so one slow handler (a mail
// send, typically) never stalls intake of subsequent messages. Messages are
// acknowledged after handling; redelivery after a crash is the only recovery
// mechanism, which makes notification sends duplicable under redelivery.
type Consumer struct {
	redisClient rueidis.Client
	dispatcher  *Dispatcher
	stream      string
	group       string
	name        string
	workers     int
}

// NewConsumer creates a new stream consumer.
func NewConsumer(redisClient rueidis.Client, dispatcher *Dispatcher, stream, group, name string, workers int) *Consumer {
	return &Consumer{
		redisClient: redisClient,
		dispatcher:  dispatcher,
		stream:      stream,
		group:       group,
		name:        name,
		workers:     workers,
	}
}

// Run consumes messages until the context is canceled, then drains the
// worker pool.
func (c *Consumer) Run(ctx context.Context) {
	c.createConsumerGroup(ctx)

	jobs := make(chan rueidis.XRangeEntry, c.workers)

	var wg sync.WaitGroup
	for range c.workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for message := range jobs {
				c.handleMessage(ctx, message)
			}
		}()
	}

	slog.Info("starting event consumer",
		slog.String("stream", c.stream),
		slog.String("group", c.group),
		slog.String("consumer", c.name),
		slog.Int("workers", c.workers),
	)

	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			slog.Info("event consumer stopped")

			return
		default:
			if err := c.consumeOnce(ctx, jobs); err != nil {
				slog.Error("error consuming messages", slog.String("error", err.Error()))
				time.Sleep(errorRetryDelay)
			}
		}
	}
}

func (c *Consumer) createConsumerGroup(ctx context.Context) {
	cmd := c.redisClient.B().XgroupCreate().Key(c.stream).Group(c.group).Id("0").Mkstream().Build()
	if err := c.redisClient.Do(ctx, cmd).Error(); err != nil {
		slog.Info("consumer group creation result (may already exist)", slog.String("error", err.Error()))
	}
}

func (c *Consumer) consumeOnce(ctx context.Context, jobs chan<- rueidis.XRangeEntry) error {
	streams, err := c.readMessages(ctx)
	if err != nil {
		return err
	}

	if streams == nil {
		return nil // read timed out, nothing pending
	}

	for _, messages := range streams {
		for _, message := range messages {
			select {
			case jobs <- message:
			case <-ctx.Done():
				return nil
			}
		}
	}

	return nil
}

func (c *Consumer) readMessages(ctx context.Context) (map[string][]rueidis.XRangeEntry, error) {
	cmd := c.redisClient.B().Xreadgroup().Group(c.group, c.name).
		Count(readBatchSize).
		Block(redisBlockTimeout).
		Streams().
		Key(c.stream).
		Id(">").
		Build()

	result := c.redisClient.Do(ctx, cmd)
	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}

		return nil, err
	}

	return result.AsXRead()
}

// handleMessage dispatches one stream entry and acknowledges it. The entry
// is acknowledged even when handling failed: every failure already produced
// a reply or a log line, and retrying emails is out of scope.
func (c *Consumer) handleMessage(ctx context.Context, message rueidis.XRangeEntry) {
	data, ok := message.FieldValues[envelopeField]
	if !ok {
		slog.Error("message missing envelope field", slog.String("message_id", message.ID))
	} else {
		c.dispatcher.Dispatch(ctx, []byte(data))
	}

	c.acknowledgeMessage(ctx, message.ID)
}

func (c *Consumer) acknowledgeMessage(ctx context.Context, messageID string) {
	cmd := c.redisClient.B().Xack().Key(c.stream).Group(c.group).Id(messageID).Build()
	if err := c.redisClient.Do(ctx, cmd).Error(); err != nil {
		slog.Error("failed to ACK message",
			slog.String("message_id", messageID),
			slog.String("error", err.Error()),
		)
	} else {
		slog.Debug("ACKed message", slog.String("message_id", messageID))
	}
}
