package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEventKind = errors.New("invalid sale event kind")
	ErrMissingMachineID = errors.New("sale event has no machine id")
	ErrMissingEventID   = errors.New("sale event has no event id")
	ErrNegativeAmount   = errors.New("sale event amounts must not be negative")
	ErrChangeMismatch   = errors.New("price plus change does not match the amount paid")
	ErrEmptyRefund      = errors.New("refund event carries no money")
)

// ChangeLine is one denomination of the change paid out with a sale
type ChangeLine struct {
	Denomination string `json:"denomination" bson:"denomination"`
	Value        int64  `json:"value" bson:"value"` // Stored in cents/minor units
	Count        int    `json:"count" bson:"count"`
}

// SaleEvent defines a Kafka message describing money or goods leaving a machine,
// or a fault that needs an operator
type SaleEvent struct {
	EventID       uuid.UUID     `json:"event_id"`
	MachineID     string        `json:"machine_id"`
	Kind          SaleEventKind `json:"kind"`
	Product       string        `json:"product,omitempty"`
	Price         int64         `json:"price"`  // Stored in cents/minor units
	Amount        int64         `json:"amount"` // Balance drained or refunded
	Change        []ChangeLine  `json:"change,omitempty"`
	Currency      string        `json:"currency"`
	Reason        string        `json:"reason,omitempty"`
	CorrelationID string        `json:"correlation_id"`
	Timestamp     time.Time     `json:"timestamp"`
}

// ChangeTotal sums the value of the change lines
func (e SaleEvent) ChangeTotal() int64 {
	var total int64
	for _, line := range e.Change {
		total += line.Value * int64(line.Count)
	}
	return total
}
