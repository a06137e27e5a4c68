package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/vending-controller/internal/domain/planogram"
	"github.com/vending-controller/internal/domain/vending"
)

// TxRunner runs fn inside a database transaction
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// PlanogramLoader seeds the fleet from the stored planograms
type PlanogramLoader struct {
	db     TxRunner
	repo   planogram.Repository
	fleet  *vending.Fleet
	logger *slog.Logger
}

// NewPlanogramLoader creates a loader for the given fleet
func NewPlanogramLoader(logger *slog.Logger, db TxRunner, repo planogram.Repository, fleet *vending.Fleet) *PlanogramLoader {
	return &PlanogramLoader{
		db:     db,
		repo:   repo,
		fleet:  fleet,
		logger: logger,
	}
}

// LoadAll reads every planogram in one transaction and loads the slots into
// the fleet. Nothing is loaded if the read fails. Slots a machine refuses are
// logged and skipped. Returns the number of slots loaded.
func (l *PlanogramLoader) LoadAll(ctx context.Context) (int, error) {
	var slots []planogram.Slot

	err := l.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		repo := l.repo.WithTx(tx)

		machineIDs, err := repo.ListMachineIDs(ctx)
		if err != nil {
			return fmt.Errorf("failed to list planogram machines: %w", err)
		}

		for _, id := range machineIDs {
			machineSlots, err := repo.GetByMachineID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to read planogram for machine %s: %w", id, err)
			}
			slots = append(slots, machineSlots...)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, slot := range slots {
		machine := l.fleet.GetOrCreate(slot.MachineID)
		if err := machine.LoadProduct(slot.ProductName, vending.Amount(slot.Price), slot.Quantity); err != nil {
			l.logger.Warn("Skipping planogram slot",
				"machine_id", slot.MachineID,
				"product", slot.ProductName,
				"error", err,
			)
			continue
		}
		loaded++
	}

	l.logger.Info("Planogram loaded",
		"machines", len(l.fleet.IDs()),
		"slots", loaded,
	)
	return loaded, nil
}
