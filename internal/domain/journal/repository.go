package journal

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages journal entry persistence with pagination support
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*Entry, error)
	GetByMachineID(ctx context.Context, machineID string, limit, offset int) ([]*Entry, error)
	CountByMachineID(ctx context.Context, machineID string) (int64, error)
}

// ErrEntryNotFound indicates missing journal entry
type ErrEntryNotFound struct {
	EventID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "journal entry not found: " + e.EventID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	// An empty target EventID matches any ErrEntryNotFound
	if t.EventID == uuid.Nil {
		return true
	}
	return e.EventID == t.EventID
}

// ErrDuplicateEntry indicates an event that was already journaled
type ErrDuplicateEntry struct {
	EventID uuid.UUID
}

func (e ErrDuplicateEntry) Error() string {
	return "duplicate journal entry: " + e.EventID.String()
}

// Is implements the errors.Is interface for ErrDuplicateEntry
func (e ErrDuplicateEntry) Is(target error) bool {
	t, ok := target.(ErrDuplicateEntry)
	if !ok {
		return false
	}
	if t.EventID == uuid.Nil {
		return true
	}
	return e.EventID == t.EventID
}
