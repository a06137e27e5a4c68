package journal

import (
	"time"

	"github.com/vending-controller/internal/domain/shared"
)

// Entry represents one sale event in the operator sales journal.
// IDs are kept as strings so the stored documents stay readable in the mongo shell.
type Entry struct {
	EventID       string               `json:"event_id" bson:"event_id"`
	MachineID     string               `json:"machine_id" bson:"machine_id"`
	Kind          shared.SaleEventKind `json:"kind" bson:"kind"`
	Product       string               `json:"product,omitempty" bson:"product,omitempty"`
	Price         int64                `json:"price" bson:"price"`   // Stored in cents/minor units
	Amount        int64                `json:"amount" bson:"amount"` // Stored in cents/minor units
	Change        []shared.ChangeLine  `json:"change,omitempty" bson:"change,omitempty"`
	Currency      string               `json:"currency" bson:"currency"`
	CorrelationID string               `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	Status        shared.EntryStatus   `json:"status" bson:"status"`
	Reason        string               `json:"reason,omitempty" bson:"reason,omitempty"`
	OccurredAt    time.Time            `json:"occurred_at" bson:"occurred_at"`
	RecordedAt    time.Time            `json:"recorded_at" bson:"recorded_at"`
}

// NewEntry builds a journal entry from a sale event
func NewEntry(event *shared.SaleEvent, status shared.EntryStatus, reason string) *Entry {
	return &Entry{
		EventID:       event.EventID.String(),
		MachineID:     event.MachineID,
		Kind:          event.Kind,
		Product:       event.Product,
		Price:         event.Price,
		Amount:        event.Amount,
		Change:        event.Change,
		Currency:      event.Currency,
		CorrelationID: event.CorrelationID,
		Status:        status,
		Reason:        reason,
		OccurredAt:    event.Timestamp,
		RecordedAt:    time.Now().UTC(),
	}
}
