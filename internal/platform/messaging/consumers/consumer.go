package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vending-controller/internal/config"
)

// MessageHandler processes one message. Returning an error leaves the offset
// uncommitted so the message is redelivered.
type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// Consumer defines the message queue consumer interface
type Consumer interface {
	Subscribe(ctx context.Context, handler MessageHandler) error
	Close() error
}

// messageReader wraps kafka.Reader methods for testing
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer implements Consumer using a Kafka consumer group
type KafkaConsumer struct {
	reader       messageReader
	logger       *slog.Logger
	topic        string
	groupID      string
	fetchBackoff time.Duration
	done         chan struct{}
}

// NewKafkaConsumer creates a consumer-group reader for the sale event topic
func NewKafkaConsumer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) *KafkaConsumer {
	startOffset := kafka.FirstOffset
	if cfg.StartOffset == kafka.LastOffset {
		startOffset = kafka.LastOffset
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{cfg.Brokers},
		Topic:       cfg.SaleEventTopic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		MaxWait:     cfg.MaxWait,
		StartOffset: startOffset,
	})
	return newKafkaConsumer(logger, reader, cfg.SaleEventTopic, cfg.ConsumerGroup)
}

func newKafkaConsumer(logger *slog.Logger, reader messageReader, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{
		reader:       reader,
		logger:       logger.With("topic", topic, "group_id", groupID),
		topic:        topic,
		groupID:      groupID,
		fetchBackoff: time.Second,
		done:         make(chan struct{}),
	}
}

// Subscribe starts consuming in the background until ctx is canceled
func (c *KafkaConsumer) Subscribe(ctx context.Context, handler MessageHandler) error {
	c.logger.Info("Subscribed to Kafka topic")

	go func() {
		defer close(c.done)
		for {
			if ctx.Err() != nil {
				c.logger.Info("Context canceled, stopping consumer")
				return
			}

			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.logger.Info("Context canceled, stopping consumer")
					return
				}
				c.logger.Error("Failed to fetch message from Kafka", "error", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(c.fetchBackoff):
				}
				continue
			}

			c.handle(ctx, msg, handler)
		}
	}()

	return nil
}

func (c *KafkaConsumer) handle(ctx context.Context, msg kafka.Message, handler MessageHandler) {
	log := c.logger.With(
		"partition", msg.Partition,
		"offset", msg.Offset,
		"key", string(msg.Key),
	)
	log.Debug("Received message from Kafka")

	if err := handler(ctx, msg.Key, msg.Value); err != nil {
		log.Error("Failed to process message, will not commit offset", "error", err)
		return
	}

	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message after successful processing", "error", err)
		return
	}
	log.Debug("Message committed successfully")
}

// Done is closed once the consume loop has exited
func (c *KafkaConsumer) Done() <-chan struct{} {
	return c.done
}

func (c *KafkaConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
