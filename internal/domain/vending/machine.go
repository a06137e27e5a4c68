// Package vending implements the transaction controller of a vending machine:
// inventory, inserted balance, change making and the purchase state machine.
// All money is handled as integer amounts of the smallest currency unit.
package vending

import "sync"

// Config fixes the coins a machine accepts and the most money it will hold
// for a single transaction.
type Config struct {
	Denominations DenominationSet
	BalanceCap    Amount
}

// DefaultConfig accepts dollars and quarters up to ten dollars
func DefaultConfig() Config {
	return Config{
		Denominations: DefaultDenominations,
		BalanceCap:    1000,
	}
}

// Machine is the entry point for one physical machine. Calls are serialized,
// so a Machine may be shared between goroutines.
type Machine struct {
	mu            sync.Mutex
	id            string
	denominations DenominationSet
	inventory     *Inventory
	ledger        *Ledger
	stateMachine  *TransactionStateMachine
}

// Snapshot is a point-in-time view of a machine
type Snapshot struct {
	MachineID string       `json:"machine_id"`
	State     State        `json:"state"`
	Balance   Amount       `json:"balance"`
	Inventory []StockLevel `json:"inventory"`
}

// NewMachine creates an idle machine with an empty inventory
func NewMachine(id string, cfg Config) (*Machine, error) {
	ledger, err := NewLedger(cfg.Denominations, cfg.BalanceCap)
	if err != nil {
		return nil, err
	}

	inventory := NewInventory()
	return &Machine{
		id:            id,
		denominations: cfg.Denominations,
		inventory:     inventory,
		ledger:        ledger,
		stateMachine:  NewTransactionStateMachine(inventory, ledger, NewGreedyChange(cfg.Denominations)),
	}, nil
}

func (m *Machine) ID() string {
	return m.id
}

// Denominations returns the accepted coin set
func (m *Machine) Denominations() DenominationSet {
	return m.denominations
}

// LoadProduct stocks quantity units of a product at the given price
func (m *Machine) LoadProduct(name string, price Amount, quantity int) error {
	product, err := NewProduct(name, price)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inventory.Load(product, quantity)
}

// InsertCoin credits a coin of the given value
func (m *Machine) InsertCoin(value Amount) Outcome {
	return m.fire(InsertCoinEvent(value))
}

// SelectProduct chooses a product. Selecting the same product again once the
// balance covers its price dispenses it.
func (m *Machine) SelectProduct(name string) Outcome {
	return m.fire(SelectProductEvent(name))
}

// Refund returns the whole balance and abandons the selection
func (m *Machine) Refund() Outcome {
	return m.fire(RefundEvent())
}

// Status returns the current state, balance and stock levels
func (m *Machine) Status() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		MachineID: m.id,
		State:     m.stateMachine.State(),
		Balance:   m.ledger.Balance(),
		Inventory: m.inventory.Snapshot(),
	}
}

func (m *Machine) fire(event Event) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateMachine.Fire(event)
}
