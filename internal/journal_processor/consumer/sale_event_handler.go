package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vending-controller/internal/domain/shared"
	"github.com/vending-controller/internal/journal_processor/service"
	"github.com/vending-controller/internal/platform/messaging/producers"
)

// SaleEventHandler handles incoming sale event messages from Kafka
type SaleEventHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewSaleEventHandler creates a new handler. producer may be nil when no
// dead letter topic is configured.
func NewSaleEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *SaleEventHandler {
	return &SaleEventHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes one Kafka message
func (h *SaleEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.SaleEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return h.deadLetter(ctx, key, value, fmt.Errorf("failed to unmarshal sale event: %w", err))
	}
	if event.EventID == uuid.Nil {
		return h.deadLetter(ctx, key, value, shared.ErrMissingEventID)
	}

	if err := h.processingService.ProcessEvent(ctx, &event); err != nil {
		h.logger.Error("Failed to process sale event",
			"event_id", event.EventID.String(),
			"machine_id", event.MachineID,
			"error", err,
		)
		return fmt.Errorf("processing sale event %s failed: %w", event.EventID, err)
	}
	return nil
}

// deadLetter parks a message that can never be journaled. Without a DLQ the
// message is dropped after logging, since redelivery cannot fix it. A failed
// DLQ publish is returned so the message is redelivered.
func (h *SaleEventHandler) deadLetter(ctx context.Context, key, value []byte, cause error) error {
	h.logger.Error("Unprocessable sale event message", "error", cause, "message_key", string(key))

	if h.producer == nil {
		h.logger.Warn("No DLQ configured, dropping message", "message_key", string(key))
		return nil
	}

	if err := h.producer.PublishToDLQ(ctx, string(key), value, cause.Error()); err != nil {
		h.logger.Error("Failed to publish message to DLQ",
			"dlq_error", err,
			"original_error", cause,
			"message_key", string(key),
		)
		return cause
	}

	h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key))
	return nil
}
