package components

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vending-controller/internal/domain/journal"
	"github.com/vending-controller/internal/domain/shared"
)

func TestJournalRecorder_Record(t *testing.T) {
	ctx := context.Background()
	event := validEvent()

	t.Run("CreatesEntry", func(t *testing.T) {
		repo := new(MockJournalRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(e *journal.Entry) bool {
			return e.EventID == event.EventID.String() &&
				e.MachineID == "lobby" &&
				e.Status == shared.EntryStatusRejected &&
				e.Reason == "CHANGE_MISMATCH"
		})).Return(nil)

		err := NewJournalRecorder(repo, newTestLogger()).Record(ctx, &event, shared.EntryStatusRejected, "CHANGE_MISMATCH")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateIsSuccess", func(t *testing.T) {
		repo := new(MockJournalRepository)
		repo.On("Create", ctx, mock.Anything).Return(journal.ErrDuplicateEntry{EventID: event.EventID})

		err := NewJournalRecorder(repo, newTestLogger()).Record(ctx, &event, shared.EntryStatusRecorded, "")
		assert.NoError(t, err)
	})

	t.Run("WriteError", func(t *testing.T) {
		repo := new(MockJournalRepository)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("not primary"))

		err := NewJournalRecorder(repo, newTestLogger()).Record(ctx, &event, shared.EntryStatusRecorded, "")
		assert.EqualError(t, err, "not primary")
	})
}
