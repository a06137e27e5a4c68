package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vending-controller/internal/domain/journal"
	"github.com/vending-controller/internal/domain/shared"
	"github.com/vending-controller/internal/journal_processor/service"
)

type EventValidatorImpl struct {
	journalRepo journal.Repository
	logger      *slog.Logger
}

func NewEventValidator(journalRepo journal.Repository, logger *slog.Logger) service.EventValidator {
	return &EventValidatorImpl{
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// Validate checks that a sale event is internally consistent
func (v *EventValidatorImpl) Validate(ctx context.Context, event *shared.SaleEvent) error {
	if event.MachineID == "" {
		return shared.ErrMissingMachineID
	}
	if !event.Kind.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrInvalidEventKind, event.Kind)
	}
	if event.Price < 0 || event.Amount < 0 {
		return fmt.Errorf("%w: price %d, amount %d", shared.ErrNegativeAmount, event.Price, event.Amount)
	}
	for _, line := range event.Change {
		if line.Value <= 0 || line.Count < 0 {
			return fmt.Errorf("%w: change line %s", shared.ErrNegativeAmount, line.Denomination)
		}
	}

	switch event.Kind {
	case shared.SaleEventDispensed:
		if paid := event.Price + event.ChangeTotal(); paid != event.Amount {
			return fmt.Errorf("%w: %d + %d != %d", shared.ErrChangeMismatch, event.Price, event.ChangeTotal(), event.Amount)
		}
	case shared.SaleEventRefunded:
		if event.Amount == 0 {
			return shared.ErrEmptyRefund
		}
	}
	return nil
}

// CheckIdempotency reports whether the event was already journaled
func (v *EventValidatorImpl) CheckIdempotency(ctx context.Context, event *shared.SaleEvent) (bool, error) {
	existing, err := v.journalRepo.GetByEventID(ctx, event.EventID)
	if err != nil {
		if errors.Is(err, journal.ErrEntryNotFound{}) {
			return false, nil
		}
		v.logger.Error("Failed to check journal for idempotency", "event_id", event.EventID.String(), "error", err)
		return false, fmt.Errorf("idempotency check failed for event %s: %w", event.EventID, err)
	}

	v.logger.Info("Sale event already journaled", "event_id", event.EventID.String(), "status", string(existing.Status))
	return true, nil
}
