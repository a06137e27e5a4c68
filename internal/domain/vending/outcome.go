package vending

// OutcomeKind names the result of a machine operation
type OutcomeKind string

const (
	OutcomePromptInsertMoney  OutcomeKind = "PROMPT_INSERT_MONEY"
	OutcomeCoinAccepted       OutcomeKind = "COIN_ACCEPTED"
	OutcomeCoinRejected       OutcomeKind = "COIN_REJECTED"
	OutcomeDispensed          OutcomeKind = "DISPENSED"
	OutcomeSoldOut            OutcomeKind = "SOLD_OUT"
	OutcomeUnknownProduct     OutcomeKind = "UNKNOWN_PRODUCT"
	OutcomeRefunded           OutcomeKind = "REFUNDED"
	OutcomeConfigurationFault OutcomeKind = "CONFIGURATION_FAULT"
)

// Outcome is the value every machine operation returns. Which fields are set
// depends on Kind:
//
//	PROMPT_INSERT_MONEY  Product, Price, Remaining
//	COIN_ACCEPTED        Coin
//	COIN_REJECTED        Coin, Reason
//	DISPENSED            Product, Price, Amount (balance drained), Change
//	SOLD_OUT             Product, Price
//	UNKNOWN_PRODUCT      Product
//	REFUNDED             Amount
//	CONFIGURATION_FAULT  Product, Price, Reason
//
// A PROMPT_INSERT_MONEY with zero Remaining means the product is armed and
// selecting it again dispenses. Balance always holds the balance left after
// the operation.
type Outcome struct {
	Kind      OutcomeKind `json:"kind"`
	Product   string      `json:"product,omitempty"`
	Price     Amount      `json:"price,omitempty"`
	Remaining Amount      `json:"remaining,omitempty"`
	Coin      Amount      `json:"coin,omitempty"`
	Amount    Amount      `json:"amount,omitempty"`
	Change    []CoinCount `json:"change,omitempty"`
	Balance   Amount      `json:"balance"`
	Reason    string      `json:"reason,omitempty"`
}

// IsFault reports whether the outcome is an internal-consistency fault that
// needs an operator rather than a customer action.
func (o Outcome) IsFault() bool {
	return o.Kind == OutcomeConfigurationFault
}

// MovesMoney reports whether money left the machine with this outcome
func (o Outcome) MovesMoney() bool {
	return o.Kind == OutcomeDispensed || (o.Kind == OutcomeRefunded && o.Amount > 0)
}
