package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vending-controller/internal/api_gateway/middleware"
	"github.com/vending-controller/internal/domain/shared"
	"github.com/vending-controller/internal/domain/vending"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestMachineService(t *testing.T, publisher *MockSaleEventPublisher) *MachineServiceImpl {
	t.Helper()

	fleet, err := vending.NewFleet(vending.DefaultConfig())
	require.NoError(t, err)

	svc := NewMachineService(newTestLogger(), fleet, publisher, "USD")
	svc.now = func() time.Time { return fixedNow }
	_, err = svc.LoadProduct(context.Background(), "lobby", "Coke", 150, 2)
	require.NoError(t, err)
	return svc
}

func TestMachineService_LoadProduct(t *testing.T) {
	svc := newTestMachineService(t, new(MockSaleEventPublisher))
	ctx := context.Background()

	_, err := svc.LoadProduct(ctx, "lobby", "Chips", -1, 1)
	assert.ErrorIs(t, err, vending.ErrInvalidPrice)

	product, err := svc.LoadProduct(ctx, "garage", "  Gum ", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, vending.Product{Name: "Gum", Price: 50}, product)

	status, err := svc.Status(ctx, "garage")
	require.NoError(t, err)
	require.Len(t, status.Inventory, 1)
	assert.Equal(t, "Gum", status.Inventory[0].Product.Name)
}

func TestMachineService_RejectedLoadCreatesNoMachine(t *testing.T) {
	svc := newTestMachineService(t, new(MockSaleEventPublisher))
	ctx := context.Background()

	_, err := svc.LoadProduct(ctx, "annex", "Chips", -1, 1)
	assert.ErrorIs(t, err, vending.ErrInvalidPrice)
	_, err = svc.LoadProduct(ctx, "annex", "Chips", 75, -1)
	assert.ErrorIs(t, err, vending.ErrInvalidQuantity)
	_, err = svc.LoadProduct(ctx, "annex", " ", 75, 1)
	assert.ErrorIs(t, err, vending.ErrEmptyProductName)

	var notFound vending.ErrMachineNotFound
	_, err = svc.Status(ctx, "annex")
	assert.ErrorAs(t, err, &notFound)
	_, err = svc.InsertCoin(ctx, "annex", 100)
	assert.ErrorAs(t, err, &notFound)
}

func TestMachineService_UnknownMachine(t *testing.T) {
	svc := newTestMachineService(t, new(MockSaleEventPublisher))
	ctx := context.Background()

	_, err := svc.InsertCoin(ctx, "nowhere", 100)
	var notFound vending.ErrMachineNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nowhere", notFound.ID)

	_, err = svc.SelectProduct(ctx, "nowhere", "Coke")
	assert.ErrorAs(t, err, &notFound)

	_, err = svc.Refund(ctx, "nowhere")
	assert.ErrorAs(t, err, &notFound)

	_, err = svc.Status(ctx, "nowhere")
	assert.ErrorAs(t, err, &notFound)
}

func TestMachineService_PublishesDispense(t *testing.T) {
	publisher := new(MockSaleEventPublisher)
	svc := newTestMachineService(t, publisher)
	ctx := middleware.WithCorrelationID(context.Background(), "corr-1")

	publisher.On("PublishSaleEvent", ctx, mock.MatchedBy(func(e *shared.SaleEvent) bool {
		return e.Kind == shared.SaleEventDispensed &&
			e.MachineID == "lobby" &&
			e.Product == "Coke" &&
			e.Price == 150 &&
			e.Amount == 200 &&
			e.ChangeTotal() == 50 &&
			e.Currency == "USD" &&
			e.CorrelationID == "corr-1" &&
			e.Timestamp.Equal(fixedNow)
	})).Return(nil).Once()

	for i := 0; i < 2; i++ {
		outcome, err := svc.InsertCoin(ctx, "lobby", 100)
		require.NoError(t, err)
		require.Equal(t, vending.OutcomeCoinAccepted, outcome.Kind)
	}

	armed, err := svc.SelectProduct(ctx, "lobby", "Coke")
	require.NoError(t, err)
	require.Equal(t, vending.OutcomePromptInsertMoney, armed.Kind)

	outcome, err := svc.SelectProduct(ctx, "lobby", "Coke")
	require.NoError(t, err)
	assert.Equal(t, vending.OutcomeDispensed, outcome.Kind)
	publisher.AssertExpectations(t)
}

func TestMachineService_PublishFailureKeepsOutcome(t *testing.T) {
	publisher := new(MockSaleEventPublisher)
	svc := newTestMachineService(t, publisher)
	ctx := context.Background()

	publisher.On("PublishSaleEvent", ctx, mock.AnythingOfType("*shared.SaleEvent")).
		Return(errors.New("broker down")).Once()

	_, err := svc.InsertCoin(ctx, "lobby", 25)
	require.NoError(t, err)

	outcome, err := svc.Refund(ctx, "lobby")
	require.NoError(t, err)
	assert.Equal(t, vending.OutcomeRefunded, outcome.Kind)
	assert.Equal(t, vending.Amount(25), outcome.Amount)
	publisher.AssertExpectations(t)
}

func TestMachineService_NoEventWithoutMoneyMovement(t *testing.T) {
	publisher := new(MockSaleEventPublisher)
	svc := newTestMachineService(t, publisher)
	ctx := context.Background()

	_, err := svc.SelectProduct(ctx, "lobby", "Coke")
	require.NoError(t, err)
	_, err = svc.InsertCoin(ctx, "lobby", 10)
	require.NoError(t, err)
	outcome, err := svc.Refund(ctx, "lobby")
	require.NoError(t, err)
	assert.Equal(t, vending.Amount(0), outcome.Amount)

	publisher.AssertNotCalled(t, "PublishSaleEvent", mock.Anything, mock.Anything)
}

func TestMachineService_PublishesConfigurationFault(t *testing.T) {
	publisher := new(MockSaleEventPublisher)
	svc := newTestMachineService(t, publisher)
	ctx := context.Background()
	_, err := svc.LoadProduct(ctx, "lobby", "Odd", 130, 1)
	require.NoError(t, err)

	publisher.On("PublishSaleEvent", ctx, mock.MatchedBy(func(e *shared.SaleEvent) bool {
		return e.Kind == shared.SaleEventConfigurationFault &&
			e.Product == "Odd" &&
			e.Amount == 150 &&
			e.Reason != ""
	})).Return(nil).Once()

	for _, coin := range []int64{100, 25, 25} {
		_, err := svc.InsertCoin(ctx, "lobby", coin)
		require.NoError(t, err)
	}

	_, err = svc.SelectProduct(ctx, "lobby", "Odd")
	require.NoError(t, err)

	outcome, err := svc.SelectProduct(ctx, "lobby", "Odd")
	require.NoError(t, err)
	assert.True(t, outcome.IsFault())
	assert.Equal(t, vending.Amount(150), outcome.Balance)
	publisher.AssertExpectations(t)
}

func TestMachineService_NilPublisher(t *testing.T) {
	fleet, err := vending.NewFleet(vending.DefaultConfig())
	require.NoError(t, err)
	svc := NewMachineService(newTestLogger(), fleet, nil, "USD")
	ctx := context.Background()

	_, err = svc.LoadProduct(ctx, "lobby", "Coke", 100, 1)
	require.NoError(t, err)
	_, err = svc.InsertCoin(ctx, "lobby", 100)
	require.NoError(t, err)
	_, err = svc.SelectProduct(ctx, "lobby", "Coke")
	require.NoError(t, err)

	outcome, err := svc.SelectProduct(ctx, "lobby", "Coke")
	require.NoError(t, err)
	assert.Equal(t, vending.OutcomeDispensed, outcome.Kind)
	assert.Equal(t, vending.DefaultDenominations, svc.Denominations())
}
