package vending

// Ledger holds the money inserted for the transaction in progress.
// The balance is always the exact sum of accepted coins since the last drain
// and never exceeds the cap.
type Ledger struct {
	accepted DenominationSet
	cap      Amount
	balance  Amount
}

// NewLedger creates an empty ledger accepting the given coins up to balanceCap
func NewLedger(accepted DenominationSet, balanceCap Amount) (*Ledger, error) {
	if balanceCap < accepted.Largest() || balanceCap <= 0 {
		return nil, ErrInvalidBalanceCap
	}
	return &Ledger{accepted: accepted, cap: balanceCap}, nil
}

// Credit adds an accepted coin. On failure the balance is unchanged and the
// coin is considered returned to the customer.
func (l *Ledger) Credit(value Amount) error {
	if !l.accepted.Accepts(value) {
		return ErrDenominationRejected
	}
	if l.balance+value > l.cap {
		return ErrBalanceCapExceeded
	}

	l.balance += value
	return nil
}

// Balance returns the current balance
func (l *Ledger) Balance() Amount {
	return l.balance
}

// Drain returns the balance and resets it to zero
func (l *Ledger) Drain() Amount {
	drained := l.balance
	l.balance = 0
	return drained
}
