package consumers

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vending-controller/internal/config"
)

// fakeReader hands out queued messages, then blocks until the context ends
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	fetchErrs []error
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		r.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(r.messages) > 0 {
		msg := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func (r *fakeReader) committedOffsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	offsets := []int64{}
	for _, m := range r.committed {
		offsets = append(offsets, m.Offset)
	}
	return offsets
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func TestNewKafkaConsumer(t *testing.T) {
	cfg := &config.KafkaConfig{
		Brokers:        "localhost:9092",
		SaleEventTopic: "sale_events",
		ConsumerGroup:  "journal-processor-group",
		MinBytes:       1024,
		MaxBytes:       10240,
		MaxWait:        time.Second,
	}

	consumer := NewKafkaConsumer(context.Background(), newTestLogger(), cfg)
	require.NotNil(t, consumer)
	require.NotNil(t, consumer.reader)
	assert.Equal(t, "sale_events", consumer.topic)
	assert.Equal(t, "journal-processor-group", consumer.groupID)
	assert.NoError(t, consumer.Close())
}

func TestKafkaConsumer_Subscribe(t *testing.T) {
	t.Run("CommitsOnlyHandledMessages", func(t *testing.T) {
		reader := &fakeReader{messages: []kafka.Message{
			{Key: []byte("lobby"), Value: []byte("ok"), Offset: 1},
			{Key: []byte("lobby"), Value: []byte("fail"), Offset: 2},
			{Key: []byte("garage"), Value: []byte("ok"), Offset: 3},
		}}
		consumer := newKafkaConsumer(newTestLogger(), reader, "sale_events", "group")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var mu sync.Mutex
		handled := 0
		err := consumer.Subscribe(ctx, func(_ context.Context, key, value []byte) error {
			mu.Lock()
			defer mu.Unlock()
			handled++
			if string(value) == "fail" {
				return errors.New("handler failed")
			}
			return nil
		})
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return handled == 3
		}, time.Second, 5*time.Millisecond)

		cancel()
		select {
		case <-consumer.Done():
		case <-time.After(time.Second):
			t.Fatal("consumer did not stop after cancel")
		}
		assert.Equal(t, []int64{1, 3}, reader.committedOffsets())
	})

	t.Run("RetriesAfterFetchError", func(t *testing.T) {
		reader := &fakeReader{
			fetchErrs: []error{errors.New("broker not available")},
			messages:  []kafka.Message{{Key: []byte("lobby"), Offset: 7}},
		}
		consumer := newKafkaConsumer(newTestLogger(), reader, "sale_events", "group")
		consumer.fetchBackoff = time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, consumer.Subscribe(ctx, func(context.Context, []byte, []byte) error { return nil }))

		assert.Eventually(t, func() bool {
			return len(reader.committedOffsets()) == 1
		}, time.Second, 5*time.Millisecond)
	})
}

func TestKafkaConsumer_Close(t *testing.T) {
	t.Run("CloseWithNilReader", func(t *testing.T) {
		consumer := &KafkaConsumer{reader: nil, logger: newTestLogger()}
		require.NoError(t, consumer.Close())
	})

	t.Run("ClosesReader", func(t *testing.T) {
		reader := &fakeReader{}
		consumer := newKafkaConsumer(newTestLogger(), reader, "sale_events", "group")
		require.NoError(t, consumer.Close())
		assert.True(t, reader.closed)
	})
}
