package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/vending-controller/internal/config"
	"github.com/vending-controller/internal/domain/shared"
)

const (
	headerEventKind     = "event-kind"
	headerCorrelationID = "correlation-id"
)

// SaleEventProducer writes sale events keyed by machine ID, so the events of
// one machine stay ordered within a partition
type SaleEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewSaleEventProducer ensures the sale event topic exists and opens an async writer
func NewSaleEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*SaleEventProducer, error) {
	if cfg.SaleEventTopic == "" {
		return nil, fmt.Errorf("kafka sale event topic is not configured")
	}

	if err := dialAndEnsureTopic(cfg.Brokers, cfg.SaleEventTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure sale event topic %s exists: %w", cfg.SaleEventTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.SaleEventTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write sale events asynchronously", "topic", cfg.SaleEventTopic, "error", err, "count", len(messages))
				return
			}
			logger.Debug("Wrote sale events asynchronously", "topic", cfg.SaleEventTopic, "count", len(messages))
		},
	}

	return &SaleEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.SaleEventTopic,
	}, nil
}

// PublishSaleEvent serializes the event as JSON and writes it keyed by machine ID
func (p *SaleEventProducer) PublishSaleEvent(ctx context.Context, event *shared.SaleEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal sale event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.MachineID),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventKind, Value: []byte(event.Kind)},
			{Key: headerCorrelationID, Value: []byte(event.CorrelationID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish sale event",
			"topic", p.topic,
			"machine_id", event.MachineID,
			"event_id", event.EventID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to publish sale event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published sale event",
		"topic", p.topic,
		"machine_id", event.MachineID,
		"event_id", event.EventID.String(),
		"kind", string(event.Kind),
	)
	return nil
}

func (p *SaleEventProducer) Close() error {
	p.logger.Info("Closing sale event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
