// Package mongo provides the MongoDB implementation of the operator sales journal.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vending-controller/internal/domain/journal"
)

const (
	// JournalCollectionName is the name of the sales journal collection in MongoDB
	JournalCollectionName = "sale_journal"
)

// JournalRepository implements the journal.Repository interface for MongoDB
type JournalRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewJournalRepository creates a new MongoDB journal repository
func NewJournalRepository(logger *slog.Logger, db *mongo.Database) *JournalRepository {
	return &JournalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *JournalRepository) collection() *mongo.Collection {
	return r.db.Collection(JournalCollectionName)
}

// EnsureIndexes creates the unique event index that backs idempotent writes
// and the per-machine index used by paginated reads
func (r *JournalRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("event_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "machine_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("machine_id_occurred_at"),
		},
	})
	if err != nil {
		r.logger.Error("Failed to create journal indexes", "error", err)
		return fmt.Errorf("failed to create journal indexes: %w", err)
	}
	return nil
}

// Create stores a new journal entry.
// Returns ErrDuplicateEntry if the event was already journaled.
func (r *JournalRepository) Create(ctx context.Context, entry *journal.Entry) error {
	_, err := r.collection().InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			eventID, _ := uuid.Parse(entry.EventID)
			return journal.ErrDuplicateEntry{EventID: eventID}
		}
		r.logger.Error("Failed to create journal entry",
			"event_id", entry.EventID,
			"error", err)
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

// GetByEventID retrieves the journal entry for a sale event.
// Returns ErrEntryNotFound if the event was never journaled.
func (r *JournalRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*journal.Entry, error) {
	var entry journal.Entry
	err := r.collection().FindOne(ctx, bson.M{"event_id": eventID.String()}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, journal.ErrEntryNotFound{EventID: eventID}
		}
		r.logger.Error("Failed to get journal entry",
			"event_id", eventID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	return &entry, nil
}

// GetByMachineID retrieves paginated journal entries for a machine, newest first
func (r *JournalRepository) GetByMachineID(ctx context.Context, machineID string, limit, offset int) ([]*journal.Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection().Find(ctx, bson.M{"machine_id": machineID}, opts)
	if err != nil {
		r.logger.Error("Failed to get journal entries",
			"machine_id", machineID,
			"error", err)
		return nil, fmt.Errorf("failed to get journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*journal.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode journal entries",
			"machine_id", machineID,
			"error", err)
		return nil, fmt.Errorf("failed to decode journal entries: %w", err)
	}

	return entries, nil
}

// CountByMachineID counts the journal entries of a machine
func (r *JournalRepository) CountByMachineID(ctx context.Context, machineID string) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"machine_id": machineID})
	if err != nil {
		r.logger.Error("Failed to count journal entries",
			"machine_id", machineID,
			"error", err)
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	return count, nil
}
