package vending

import (
	"errors"
	"fmt"
)

// Configuration and coin errors
var (
	ErrEmptyProductName          = errors.New("product name cannot be empty")
	ErrInvalidPrice              = errors.New("price must not be negative")
	ErrInvalidQuantity           = errors.New("quantity must not be negative")
	ErrDenominationRejected      = errors.New("denomination is not accepted")
	ErrBalanceCapExceeded        = errors.New("coin would exceed the balance cap")
	ErrInvalidBalanceCap         = errors.New("balance cap must be at least the largest denomination")
	ErrNoDenominations           = errors.New("at least one denomination is required")
	ErrInvalidDenomination       = errors.New("denomination value must be positive")
	ErrDuplicateDenomination     = errors.New("duplicate denomination")
	ErrNonCanonicalDenominations = errors.New("each denomination must be a multiple of the next smaller one")
)

// ErrUnknownProduct indicates a product name that was never loaded
type ErrUnknownProduct struct {
	Name string
}

func (e ErrUnknownProduct) Error() string {
	return "unknown product: " + e.Name
}

// Is implements the errors.Is interface for ErrUnknownProduct
func (e ErrUnknownProduct) Is(target error) bool {
	t, ok := target.(ErrUnknownProduct)
	if !ok {
		return false
	}
	// An empty target name matches any unknown product
	return t.Name == "" || t.Name == e.Name
}

// ErrOutOfStock indicates a reservation against an empty slot
type ErrOutOfStock struct {
	Name string
}

func (e ErrOutOfStock) Error() string {
	return "product out of stock: " + e.Name
}

// Is implements the errors.Is interface for ErrOutOfStock
func (e ErrOutOfStock) Is(target error) bool {
	t, ok := target.(ErrOutOfStock)
	if !ok {
		return false
	}
	return t.Name == "" || t.Name == e.Name
}

// ErrUnrepresentableAmount is the internal-consistency fault raised when the
// denomination table cannot pay out an amount exactly.
type ErrUnrepresentableAmount struct {
	Amount    Amount
	Remainder Amount
}

func (e ErrUnrepresentableAmount) Error() string {
	return fmt.Sprintf("amount %d cannot be paid out with the configured denominations (remainder %d)", e.Amount, e.Remainder)
}

// Is implements the errors.Is interface for ErrUnrepresentableAmount
func (e ErrUnrepresentableAmount) Is(target error) bool {
	_, ok := target.(ErrUnrepresentableAmount)
	return ok
}

// ErrMachineNotFound indicates a machine ID with no registered instance
type ErrMachineNotFound struct {
	ID string
}

func (e ErrMachineNotFound) Error() string {
	return "machine not found: " + e.ID
}
