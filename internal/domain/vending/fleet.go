package vending

import (
	"sort"
	"sync"
)

// Fleet keeps one independent Machine per machine ID. Machines share no state.
type Fleet struct {
	mu       sync.RWMutex
	cfg      Config
	machines map[string]*Machine
}

// NewFleet validates the machine configuration once and returns an empty fleet
func NewFleet(cfg Config) (*Fleet, error) {
	if _, err := NewLedger(cfg.Denominations, cfg.BalanceCap); err != nil {
		return nil, err
	}
	return &Fleet{
		cfg:      cfg,
		machines: make(map[string]*Machine),
	}, nil
}

// Get returns the machine registered under id
func (f *Fleet) Get(id string) (*Machine, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	m, ok := f.machines[id]
	if !ok {
		return nil, ErrMachineNotFound{ID: id}
	}
	return m, nil
}

// GetOrCreate returns the machine registered under id, creating it if needed
func (f *Fleet) GetOrCreate(id string) *Machine {
	if m, err := f.Get(id); err == nil {
		return m
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if m, ok := f.machines[id]; ok {
		return m
	}
	// cfg was validated by NewFleet
	m, _ := NewMachine(id, f.cfg)
	f.machines[id] = m
	return m
}

// IDs lists the registered machine IDs in order
func (f *Fleet) IDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]string, 0, len(f.machines))
	for id := range f.machines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Denominations returns the coin set shared by every machine in the fleet
func (f *Fleet) Denominations() DenominationSet {
	return f.cfg.Denominations
}
