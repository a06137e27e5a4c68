package components

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vending-controller/internal/domain/journal"
	"github.com/vending-controller/internal/domain/shared"
	"github.com/vending-controller/internal/journal_processor/service"
)

type JournalRecorderImpl struct {
	journalRepo journal.Repository
	logger      *slog.Logger
}

func NewJournalRecorder(journalRepo journal.Repository, logger *slog.Logger) service.JournalRecorder {
	return &JournalRecorderImpl{
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// Record creates the journal entry for an event. A concurrent delivery that
// already created the entry counts as success.
func (r *JournalRecorderImpl) Record(ctx context.Context, event *shared.SaleEvent, status shared.EntryStatus, reason string) error {
	entry := journal.NewEntry(event, status, reason)

	if err := r.journalRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, journal.ErrDuplicateEntry{}) {
			r.logger.Info("Journal entry already exists", "event_id", entry.EventID)
			return nil
		}
		r.logger.Error("Failed to create journal entry", "event_id", entry.EventID, "status", string(status), "error", err)
		return err
	}
	return nil
}
