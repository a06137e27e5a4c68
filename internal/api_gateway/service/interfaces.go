package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vending-controller/internal/domain/journal"
	"github.com/vending-controller/internal/domain/vending"
)

// MachineService drives the machines of the fleet on behalf of HTTP clients
type MachineService interface {
	// LoadProduct adds or replaces a product, creating the machine on the first
	// successful load, and returns the product as stored.
	// Returns one of the vending configuration errors for invalid input
	LoadProduct(ctx context.Context, machineID, name string, price int64, quantity int) (vending.Product, error)

	// InsertCoin, SelectProduct and Refund return vending.ErrMachineNotFound
	// for a machine that was never loaded. Every other result is an Outcome.
	InsertCoin(ctx context.Context, machineID string, value int64) (vending.Outcome, error)
	SelectProduct(ctx context.Context, machineID, product string) (vending.Outcome, error)
	Refund(ctx context.Context, machineID string) (vending.Outcome, error)

	Status(ctx context.Context, machineID string) (vending.Snapshot, error)

	// Denominations returns the coin set shared by the fleet
	Denominations() vending.DenominationSet
}

// JournalService reads the operator sales journal
type JournalService interface {
	// GetEntry retrieves a journal entry by its event ID
	// Returns nil if the entry is not found
	GetEntry(ctx context.Context, eventID uuid.UUID) (*journal.Entry, error)

	// GetMachineJournal retrieves a page of a machine's entries, newest first
	// Returns entries, total count of the machine's entries, and any error
	GetMachineJournal(ctx context.Context, machineID string, page, perPage int) ([]*journal.Entry, int64, error)
}
