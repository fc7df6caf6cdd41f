package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"webpos/pkg/logger"
	"webpos/pkg/metrics"
	"webpos/pos-worker-service/internal/app/pos-worker/entity"
	"webpos/pos-worker-service/internal/app/pos-worker/service"

	"github.com/segmentio/kafka-go"
)

const serviceName = "pos-worker"

const (
	initialRetryBackoff = 500 * time.Millisecond
	maxRetryBackoff     = 30 * time.Second
)

var (
	errMalformedEvent  = errors.New("malformed event")
	errConsumerStopped = errors.New("consumer stopped")
)

// KafkaConsumer reads POS events and feeds them to the sales stats service.
type KafkaConsumer struct {
	reader   *kafka.Reader
	statsSvc service.SalesStatsServiceInterface
	topic    string
	groupID  string
	stopChan chan struct{}
	doneChan chan struct{}

	retryBackoff time.Duration
}

func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	statsSvc service.SalesStatsServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: time.Second,
	})

	return &KafkaConsumer{
		reader:   reader,
		statsSvc: statsSvc,
		topic:    topic,
		groupID:  groupID,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),

		retryBackoff: initialRetryBackoff,
	}
}

func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Str("topic", c.topic).Str("group_id", c.groupID).Msg("Starting Kafka consumer")
	go c.consume(ctx)
}

func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer")
	close(c.stopChan)
	<-c.doneChan
	if err := c.reader.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Kafka reader")
	}
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		case <-ctx.Done():
			return
		default:
		}

		readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		message, err := c.reader.FetchMessage(readCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !errors.Is(err, context.DeadlineExceeded) {
				metrics.RecordKafkaError(serviceName, c.topic, "fetch")
				logger.Error().Err(err).Msg("Error fetching message")
				time.Sleep(time.Second)
			}
			continue
		}

		start := time.Now()
		err = c.handleMessage(ctx, message)
		switch {
		case err == nil:
			metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID, time.Since(start))
		case errors.Is(err, errMalformedEvent):
			// poison message: commit and move on
			metrics.RecordKafkaError(serviceName, c.topic, "decode")
			logger.Error().Err(err).Int64("offset", message.Offset).Int("partition", message.Partition).Msg("Dropping malformed event")
		default:
			// stopped mid-retry; the uncommitted offset is fetched again on restart
			return
		}

		if err := c.reader.CommitMessages(ctx, message); err != nil {
			logger.Error().Err(err).Msg("Error committing message")
		}
	}
}

// handleMessage processes message, retrying failures in place with exponential
// backoff so later events on the partition are not applied ahead of it.
// It returns nil or errMalformedEvent once the offset may be committed, and
// errConsumerStopped or the context error when the consumer shuts down first.
func (c *KafkaConsumer) handleMessage(ctx context.Context, message kafka.Message) error {
	backoff := c.retryBackoff
	for attempt := 1; ; attempt++ {
		err := c.processMessage(ctx, message)
		if err == nil || errors.Is(err, errMalformedEvent) {
			return err
		}

		metrics.RecordKafkaError(serviceName, c.topic, "process")
		logger.Error().
			Err(err).
			Int64("offset", message.Offset).
			Int("partition", message.Partition).
			Int("attempt", attempt).
			Dur("retry_in", backoff).
			Msg("Error processing message")

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-c.stopChan:
			timer.Stop()
			return errConsumerStopped
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}

		backoff *= 2
		if backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}
}

func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.POSEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", errMalformedEvent, err)
	}

	logger.Debug().
		Str("event_type", event.EventType).
		Str("event_id", event.EventID).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received event")

	if err := c.statsSvc.ProcessEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to process %s event: %w", event.EventType, err)
	}
	return nil
}

func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
