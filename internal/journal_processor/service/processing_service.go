package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vending-controller/internal/domain/shared"
)

type ProcessingServiceImpl struct {
	validator EventValidator
	recorder  JournalRecorder
	logger    *slog.Logger
}

func NewProcessingService(
	validator EventValidator,
	recorder JournalRecorder,
	logger *slog.Logger,
) ProcessingService {
	return &ProcessingServiceImpl{
		validator: validator,
		recorder:  recorder,
		logger:    logger,
	}
}

// ProcessEvent journals one sale event. Invalid events are journaled as
// REJECTED, configuration faults as NEEDS_OPERATOR, everything else as
// RECORDED. A returned error means the event should be redelivered.
func (s *ProcessingServiceImpl) ProcessEvent(ctx context.Context, event *shared.SaleEvent) error {
	logger := s.logger.With("event_id", event.EventID.String(), "machine_id", event.MachineID)
	if event.CorrelationID != "" {
		logger = logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Processing sale event", "kind", string(event.Kind), "amount", event.Amount)

	skip, err := s.validator.CheckIdempotency(ctx, event)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}

	if err := s.validator.Validate(ctx, event); err != nil {
		reason := fmt.Sprintf("%s: %s", rejectReason(err), err.Error())
		logger.Warn("Sale event rejected", "reason", reason)

		if recordErr := s.recorder.Record(ctx, event, shared.EntryStatusRejected, reason); recordErr != nil {
			return fmt.Errorf("failed to record rejected event %s: %w", event.EventID, recordErr)
		}
		return nil
	}

	status, reason := shared.EntryStatusRecorded, ""
	if event.Kind == shared.SaleEventConfigurationFault {
		status, reason = shared.EntryStatusNeedsOperator, event.Reason
		logger.Error("Machine needs an operator", "product", event.Product, "reason", event.Reason)
	}

	if err := s.recorder.Record(ctx, event, status, reason); err != nil {
		return fmt.Errorf("failed to record event %s: %w", event.EventID, err)
	}

	logger.Info("Sale event journaled", "status", string(status))
	return nil
}

func rejectReason(err error) shared.RejectReason {
	switch {
	case errors.Is(err, shared.ErrMissingMachineID):
		return shared.RejectReasonMissingMachineID
	case errors.Is(err, shared.ErrNegativeAmount):
		return shared.RejectReasonNegativeAmount
	case errors.Is(err, shared.ErrChangeMismatch):
		return shared.RejectReasonChangeMismatch
	case errors.Is(err, shared.ErrEmptyRefund):
		return shared.RejectReasonEmptyRefund
	default:
		return shared.RejectReasonUnknownKind
	}
}
