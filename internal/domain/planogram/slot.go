package planogram

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Slot is one row of a machine's planogram: the product stocked, its price
// and the starting quantity.
type Slot struct {
	MachineID   string `json:"machine_id" db:"machine_id"`
	ProductName string `json:"product_name" db:"product_name"`
	Price       int64  `json:"price" db:"price"` // Stored in cents/minor units
	Quantity    int    `json:"quantity" db:"quantity"`
}

// Repository reads planograms. Machine state is never written back.
type Repository interface {
	ListMachineIDs(ctx context.Context) ([]string, error)
	GetByMachineID(ctx context.Context, machineID string) ([]Slot, error)
	WithTx(tx pgx.Tx) Repository
}
