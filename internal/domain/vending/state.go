package vending

import "fmt"

// Phase is the stage of the purchase attempt in progress
type Phase string

const (
	PhaseIdle            Phase = "IDLE"
	PhaseAwaitingPayment Phase = "AWAITING_PAYMENT"
	PhaseReadyToDispense Phase = "READY_TO_DISPENSE"
	// PhaseSoldOut is only ever reported through OutcomeSoldOut; the machine
	// resolves it to PhaseIdle within the same transition.
	PhaseSoldOut Phase = "SOLD_OUT"
)

// State is the transaction state of one machine
type State struct {
	Phase     Phase  `json:"phase"`
	Selection string `json:"selection,omitempty"`
}

var idle = State{Phase: PhaseIdle}

// EventKind identifies a customer action
type EventKind int

const (
	EventInsertCoin EventKind = iota + 1
	EventSelectProduct
	EventRefund
)

// Event is a customer action fed to the state machine
type Event struct {
	Kind    EventKind
	Product string
	Coin    Amount
}

// InsertCoinEvent feeds one coin of the given value
func InsertCoinEvent(value Amount) Event {
	return Event{Kind: EventInsertCoin, Coin: value}
}

// SelectProductEvent chooses a product, or confirms the armed one
func SelectProductEvent(name string) Event {
	return Event{Kind: EventSelectProduct, Product: name}
}

// RefundEvent returns the whole balance
func RefundEvent() Event {
	return Event{Kind: EventRefund}
}

// TransactionStateMachine drives one purchase attempt at a time over an
// inventory, a ledger and a change calculator.
type TransactionStateMachine struct {
	inventory *Inventory
	ledger    *Ledger
	change    GreedyChange
	state     State
}

// NewTransactionStateMachine creates a state machine in the idle state
func NewTransactionStateMachine(inventory *Inventory, ledger *Ledger, change GreedyChange) *TransactionStateMachine {
	return &TransactionStateMachine{
		inventory: inventory,
		ledger:    ledger,
		change:    change,
		state:     idle,
	}
}

// State returns the current state
func (sm *TransactionStateMachine) State() State {
	return sm.state
}

// Fire applies an event and records the resulting state
func (sm *TransactionStateMachine) Fire(event Event) Outcome {
	next, outcome := sm.step(sm.state, event)
	sm.state = next
	return outcome
}

// step maps (state, event) to (next state, outcome). The inventory and
// ledger are only touched through their own validated operations.
func (sm *TransactionStateMachine) step(current State, event Event) (State, Outcome) {
	switch event.Kind {
	case EventInsertCoin:
		return sm.onInsertCoin(current, event.Coin)
	case EventSelectProduct:
		return sm.onSelectProduct(current, event.Product)
	case EventRefund:
		return sm.onRefund()
	default:
		return current, Outcome{
			Kind:    OutcomeConfigurationFault,
			Balance: sm.ledger.Balance(),
			Reason:  fmt.Sprintf("unsupported event kind %d", event.Kind),
		}
	}
}

func (sm *TransactionStateMachine) onInsertCoin(current State, coin Amount) (State, Outcome) {
	if err := sm.ledger.Credit(coin); err != nil {
		return current, Outcome{
			Kind:    OutcomeCoinRejected,
			Coin:    coin,
			Balance: sm.ledger.Balance(),
			Reason:  err.Error(),
		}
	}

	next := current
	if current.Phase != PhaseIdle {
		next.Phase = PhaseAwaitingPayment
		// A price change or an unloaded selection keeps the machine waiting;
		// the next selection re-evaluates either way.
		if price, _, err := sm.inventory.Peek(current.Selection); err == nil && sm.ledger.Balance() >= price {
			next.Phase = PhaseReadyToDispense
		}
	}

	return next, Outcome{
		Kind:    OutcomeCoinAccepted,
		Coin:    coin,
		Balance: sm.ledger.Balance(),
	}
}

func (sm *TransactionStateMachine) onSelectProduct(current State, name string) (State, Outcome) {
	balance := sm.ledger.Balance()

	price, stock, err := sm.inventory.Peek(name)
	if err != nil {
		return current, Outcome{
			Kind:    OutcomeUnknownProduct,
			Product: name,
			Balance: balance,
		}
	}

	if stock == 0 {
		return idle, Outcome{
			Kind:    OutcomeSoldOut,
			Product: name,
			Price:   price,
			Balance: balance,
		}
	}

	// Only a repeated selection of the armed product dispenses
	if current.Phase == PhaseReadyToDispense && current.Selection == name && balance >= price {
		return sm.dispense(name, price)
	}

	next := State{Phase: PhaseAwaitingPayment, Selection: name}
	remaining := price - balance
	if remaining <= 0 {
		next.Phase = PhaseReadyToDispense
		remaining = 0
	}

	return next, Outcome{
		Kind:      OutcomePromptInsertMoney,
		Product:   name,
		Price:     price,
		Remaining: remaining,
		Balance:   balance,
	}
}

// dispense fails closed: change is computed before any stock or money moves.
func (sm *TransactionStateMachine) dispense(name string, price Amount) (State, Outcome) {
	balance := sm.ledger.Balance()

	change, err := sm.change.Breakdown(balance - price)
	if err != nil {
		return idle, Outcome{
			Kind:    OutcomeConfigurationFault,
			Product: name,
			Price:   price,
			Balance: balance,
			Reason:  err.Error(),
		}
	}

	if err := sm.inventory.ReserveOne(name); err != nil {
		return idle, Outcome{
			Kind:    OutcomeSoldOut,
			Product: name,
			Price:   price,
			Balance: balance,
		}
	}

	drained := sm.ledger.Drain()
	return idle, Outcome{
		Kind:    OutcomeDispensed,
		Product: name,
		Price:   price,
		Amount:  drained,
		Change:  change,
		Balance: sm.ledger.Balance(),
	}
}

func (sm *TransactionStateMachine) onRefund() (State, Outcome) {
	refunded := sm.ledger.Drain()
	return idle, Outcome{
		Kind:    OutcomeRefunded,
		Amount:  refunded,
		Balance: sm.ledger.Balance(),
	}
}
