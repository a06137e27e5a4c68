package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/vending-controller/internal/domain/journal"
	"github.com/vending-controller/internal/domain/planogram"
	"github.com/vending-controller/internal/domain/shared"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockSaleEventPublisher struct {
	mock.Mock
}

func (m *MockSaleEventPublisher) PublishSaleEvent(ctx context.Context, event *shared.SaleEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockSaleEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
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

type MockPlanogramRepository struct {
	mock.Mock
}

func (m *MockPlanogramRepository) ListMachineIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlanogramRepository) GetByMachineID(ctx context.Context, machineID string) ([]planogram.Slot, error) {
	args := m.Called(ctx, machineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planogram.Slot), args.Error(1)
}

func (m *MockPlanogramRepository) WithTx(tx pgx.Tx) planogram.Repository {
	return m
}

// fakeTxRunner runs fn without a real transaction
type fakeTxRunner struct {
	calls int
	err   error
}

func (f *fakeTxRunner) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}
