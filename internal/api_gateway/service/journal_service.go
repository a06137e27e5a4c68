package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vending-controller/internal/domain/journal"
)

// JournalServiceImpl implements the JournalService interface
type JournalServiceImpl struct {
	journalRepo journal.Repository
	logger      *slog.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(logger *slog.Logger, journalRepo journal.Repository) JournalService {
	return &JournalServiceImpl{
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// GetEntry retrieves a journal entry by its event ID. Returns nil if not found
func (s *JournalServiceImpl) GetEntry(ctx context.Context, eventID uuid.UUID) (*journal.Entry, error) {
	entry, err := s.journalRepo.GetByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, journal.ErrEntryNotFound{}) {
			s.logger.Info("Journal entry not found", "event_id", eventID.String())
			return nil, nil
		}
		s.logger.Error("Failed to get journal entry", "event_id", eventID.String(), "error", err)
		return nil, err
	}
	return entry, nil
}

// GetMachineJournal retrieves a page of a machine's journal
func (s *JournalServiceImpl) GetMachineJournal(ctx context.Context, machineID string, page, perPage int) ([]*journal.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.journalRepo.GetByMachineID(ctx, machineID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.journalRepo.CountByMachineID(ctx, machineID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
