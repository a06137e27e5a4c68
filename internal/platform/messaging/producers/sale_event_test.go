package producers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vending-controller/internal/domain/shared"
)

// MockKafkaWriter mocks KafkaWriter interface
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSaleEventProducer_PublishSaleEvent(t *testing.T) {
	ctx := context.Background()
	topic := "test-sale-events"
	event := &shared.SaleEvent{
		EventID:       uuid.New(),
		MachineID:     "lobby",
		Kind:          shared.SaleEventDispensed,
		Product:       "Coke",
		Price:         150,
		Amount:        175,
		Change:        []shared.ChangeLine{{Denomination: "QUARTER", Value: 25, Count: 1}},
		Currency:      "USD",
		CorrelationID: "corr-1",
		Timestamp:     time.Now().UTC(),
	}

	t.Run("SuccessfulPublish", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &SaleEventProducer{logger: newTestLogger(), writer: mockWriter, topic: topic}

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			msg := msgs[0]
			var decoded shared.SaleEvent
			if err := json.Unmarshal(msg.Value, &decoded); err != nil {
				return false
			}
			return string(msg.Key) == "lobby" &&
				decoded.EventID == event.EventID &&
				decoded.ChangeTotal() == 25 &&
				len(msg.Headers) == 2 &&
				string(msg.Headers[0].Value) == "DISPENSED" &&
				string(msg.Headers[1].Value) == "corr-1"
		})).Return(nil).Once()

		err := producer.PublishSaleEvent(ctx, event)
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("WriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &SaleEventProducer{logger: newTestLogger(), writer: mockWriter, topic: topic}
		writerError := errors.New("kafka write error")

		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

		err := producer.PublishSaleEvent(ctx, event)
		require.Error(t, err)
		assert.ErrorIs(t, err, writerError)
		assert.Contains(t, err.Error(), topic)
		mockWriter.AssertExpectations(t)
	})
}

func TestSaleEventProducer_Close(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	producer := &SaleEventProducer{logger: newTestLogger(), writer: mockWriter, topic: "test-sale-events"}
	closeError := errors.New("close failed")

	mockWriter.On("Close").Return(nil).Once()
	assert.NoError(t, producer.Close())

	mockWriter.On("Close").Return(closeError).Once()
	assert.ErrorIs(t, producer.Close(), closeError)

	mockWriter.AssertExpectations(t)
}

func TestNewSaleEventProducer_RequiresTopic(t *testing.T) {
	producer, err := NewSaleEventProducer(context.Background(), newTestLogger(), &configKafkaWithoutTopic)
	assert.Nil(t, producer)
	assert.EqualError(t, err, "kafka sale event topic is not configured")
}
