package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vending-controller/internal/domain/planogram"
	"github.com/vending-controller/internal/domain/vending"
)

func TestPlanogramLoader_LoadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("LoadsEveryMachine", func(t *testing.T) {
		fleet, err := vending.NewFleet(vending.DefaultConfig())
		require.NoError(t, err)

		repo := new(MockPlanogramRepository)
		repo.On("ListMachineIDs", ctx).Return([]string{"garage", "lobby"}, nil)
		repo.On("GetByMachineID", ctx, "garage").Return([]planogram.Slot{
			{MachineID: "garage", ProductName: "Chips", Price: 75, Quantity: 4},
		}, nil)
		repo.On("GetByMachineID", ctx, "lobby").Return([]planogram.Slot{
			{MachineID: "lobby", ProductName: "Coke", Price: 150, Quantity: 1},
			{MachineID: "lobby", ProductName: "Pepsi", Price: 125, Quantity: 0},
		}, nil)

		db := &fakeTxRunner{}
		loaded, err := NewPlanogramLoader(newTestLogger(), db, repo, fleet).LoadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, loaded)
		assert.Equal(t, 1, db.calls)
		assert.Equal(t, []string{"garage", "lobby"}, fleet.IDs())

		lobby, err := fleet.Get("lobby")
		require.NoError(t, err)
		assert.Len(t, lobby.Status().Inventory, 2)
	})

	t.Run("SkipsRejectedSlots", func(t *testing.T) {
		fleet, err := vending.NewFleet(vending.DefaultConfig())
		require.NoError(t, err)

		repo := new(MockPlanogramRepository)
		repo.On("ListMachineIDs", ctx).Return([]string{"lobby"}, nil)
		repo.On("GetByMachineID", ctx, "lobby").Return([]planogram.Slot{
			{MachineID: "lobby", ProductName: "  ", Price: 100, Quantity: 1},
			{MachineID: "lobby", ProductName: "Coke", Price: 150, Quantity: 1},
		}, nil)

		loaded, err := NewPlanogramLoader(newTestLogger(), &fakeTxRunner{}, repo, fleet).LoadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded)
	})

	t.Run("ReadFailureLoadsNothing", func(t *testing.T) {
		fleet, err := vending.NewFleet(vending.DefaultConfig())
		require.NoError(t, err)

		repo := new(MockPlanogramRepository)
		repo.On("ListMachineIDs", ctx).Return([]string{"garage", "lobby"}, nil)
		repo.On("GetByMachineID", ctx, "garage").Return([]planogram.Slot{
			{MachineID: "garage", ProductName: "Chips", Price: 75, Quantity: 4},
		}, nil)
		repo.On("GetByMachineID", ctx, "lobby").Return(nil, errors.New("connection reset"))

		loaded, err := NewPlanogramLoader(newTestLogger(), &fakeTxRunner{}, repo, fleet).LoadAll(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lobby")
		assert.Zero(t, loaded)
		assert.Empty(t, fleet.IDs())
	})

	t.Run("TransactionFailure", func(t *testing.T) {
		fleet, err := vending.NewFleet(vending.DefaultConfig())
		require.NoError(t, err)

		_, err = NewPlanogramLoader(newTestLogger(), &fakeTxRunner{err: errors.New("begin failed")}, new(MockPlanogramRepository), fleet).LoadAll(ctx)
		assert.EqualError(t, err, "begin failed")
	})
}
