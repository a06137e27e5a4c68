// Package postgres provides the PostgreSQL side of the vending services:
// the planogram that seeds machine inventory at startup.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"

	"github.com/vending-controller/internal/domain/planogram"
	"github.com/vending-controller/internal/platform/persistence"
)

const (
	planogramTable = "planogram"

	colMachineID   = "machine_id"
	colProductName = "product_name"
	colPrice       = "price"
	colQuantity    = "quantity"
)

var dialect = goqu.Dialect("postgres")

// PlanogramRepository implements the planogram.Repository interface for PostgreSQL
type PlanogramRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewPlanogramRepository creates a repository reading through the pool of db
func NewPlanogramRepository(logger *slog.Logger, db *persistence.PostgresDB) planogram.Repository {
	return &PlanogramRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository that reads inside tx
func (r *PlanogramRepository) WithTx(tx pgx.Tx) planogram.Repository {
	return &PlanogramRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// ListMachineIDs returns every machine with at least one planogram row, in order
func (r *PlanogramRepository) ListMachineIDs(ctx context.Context) ([]string, error) {
	query, args, err := dialect.
		From(planogramTable).
		Select(colMachineID).
		Distinct().
		Order(goqu.I(colMachineID).Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build machine id query: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list planogram machines", "error", err)
		return nil, fmt.Errorf("failed to list planogram machines: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		r.logger.Error("Failed to scan planogram machines", "error", err)
		return nil, fmt.Errorf("failed to scan planogram machines: %w", err)
	}

	return ids, nil
}

// GetByMachineID returns the slots configured for a machine, ordered by product name.
// A machine without rows yields an empty slice.
func (r *PlanogramRepository) GetByMachineID(ctx context.Context, machineID string) ([]planogram.Slot, error) {
	query, args, err := dialect.
		From(planogramTable).
		Prepared(true).
		Select(colMachineID, colProductName, colPrice, colQuantity).
		Where(goqu.Ex{colMachineID: machineID}).
		Order(goqu.I(colProductName).Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build planogram query: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to get planogram", "machine_id", machineID, "error", err)
		return nil, fmt.Errorf("failed to get planogram: %w", err)
	}

	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (planogram.Slot, error) {
		var slot planogram.Slot
		err := row.Scan(&slot.MachineID, &slot.ProductName, &slot.Price, &slot.Quantity)
		return slot, err
	})
	if err != nil {
		r.logger.Error("Failed to scan planogram", "machine_id", machineID, "error", err)
		return nil, fmt.Errorf("failed to scan planogram: %w", err)
	}

	return slots, nil
}
