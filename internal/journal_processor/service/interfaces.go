package service

import (
	"context"

	"github.com/vending-controller/internal/domain/shared"
)

// ProcessingService defines the interface for journaling sale events.
type ProcessingService interface {
	ProcessEvent(ctx context.Context, event *shared.SaleEvent) error
}

// EventValidator validates sale events before they are journaled
type EventValidator interface {
	Validate(ctx context.Context, event *shared.SaleEvent) error
	CheckIdempotency(ctx context.Context, event *shared.SaleEvent) (bool, error)
}

// JournalRecorder writes journal entries. Recording an event that is already
// journaled is not an error.
type JournalRecorder interface {
	Record(ctx context.Context, event *shared.SaleEvent, status shared.EntryStatus, reason string) error
}
