package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vending-controller/internal/domain/journal"
	"github.com/vending-controller/internal/domain/vending"
)

// envelope is Response with a typed payload for decoding in tests
type envelope[T any] struct {
	Data          T          `json:"data"`
	Error         *ErrorInfo `json:"error,omitempty"`
	CorrelationID string     `json:"correlation_id,omitempty"`
	Meta          *MetaInfo  `json:"meta,omitempty"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var body envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockMachineService struct {
	mock.Mock
}

func (m *MockMachineService) LoadProduct(ctx context.Context, machineID, name string, price int64, quantity int) (vending.Product, error) {
	args := m.Called(ctx, machineID, name, price, quantity)
	return args.Get(0).(vending.Product), args.Error(1)
}

func (m *MockMachineService) InsertCoin(ctx context.Context, machineID string, value int64) (vending.Outcome, error) {
	args := m.Called(ctx, machineID, value)
	return args.Get(0).(vending.Outcome), args.Error(1)
}

func (m *MockMachineService) SelectProduct(ctx context.Context, machineID, product string) (vending.Outcome, error) {
	args := m.Called(ctx, machineID, product)
	return args.Get(0).(vending.Outcome), args.Error(1)
}

func (m *MockMachineService) Refund(ctx context.Context, machineID string) (vending.Outcome, error) {
	args := m.Called(ctx, machineID)
	return args.Get(0).(vending.Outcome), args.Error(1)
}

func (m *MockMachineService) Status(ctx context.Context, machineID string) (vending.Snapshot, error) {
	args := m.Called(ctx, machineID)
	return args.Get(0).(vending.Snapshot), args.Error(1)
}

func (m *MockMachineService) Denominations() vending.DenominationSet {
	return vending.DefaultDenominations
}

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, eventID uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) GetMachineJournal(ctx context.Context, machineID string, page, perPage int) ([]*journal.Entry, int64, error) {
	args := m.Called(ctx, machineID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*journal.Entry), args.Get(1).(int64), args.Error(2)
}

