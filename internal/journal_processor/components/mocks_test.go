package components

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vending-controller/internal/domain/journal"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Create(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalRepository) GetByMachineID(ctx context.Context, machineID string, limit, offset int) ([]*journal.Entry, error) {
	args := m.Called(ctx, machineID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journal.Entry), args.Error(1)
}

func (m *MockJournalRepository) CountByMachineID(ctx context.Context, machineID string) (int64, error) {
	args := m.Called(ctx, machineID)
	return args.Get(0).(int64), args.Error(1)
}
