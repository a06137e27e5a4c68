package vending

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Amount is a quantity of money in the smallest currency unit (cents)
type Amount int64

// Denomination is a coin value accepted and paid out by a machine
type Denomination struct {
	Name  string `json:"name"`
	Value Amount `json:"value"`
}

// DenominationSet is an immutable, canonical set of denominations ordered
// from the largest value to the smallest.
type DenominationSet struct {
	denominations []Denomination
}

// DefaultDenominations is the dollar/quarter set the machines ship with
var DefaultDenominations = MustDenominationSet(
	Denomination{Name: "DOLLAR", Value: 100},
	Denomination{Name: "QUARTER", Value: 25},
)

// NewDenominationSet validates and orders the given denominations.
// The set must be canonical so that greedy change making stays minimal.
func NewDenominationSet(denominations ...Denomination) (DenominationSet, error) {
	if len(denominations) == 0 {
		return DenominationSet{}, ErrNoDenominations
	}

	sorted := make([]Denomination, len(denominations))
	copy(sorted, denominations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	names := make(map[string]struct{}, len(sorted))
	for i, d := range sorted {
		if d.Value <= 0 {
			return DenominationSet{}, fmt.Errorf("%w: %s=%d", ErrInvalidDenomination, d.Name, d.Value)
		}
		if _, seen := names[d.Name]; seen || (i > 0 && sorted[i-1].Value == d.Value) {
			return DenominationSet{}, fmt.Errorf("%w: %s=%d", ErrDuplicateDenomination, d.Name, d.Value)
		}
		names[d.Name] = struct{}{}
		if i > 0 && sorted[i-1].Value%d.Value != 0 {
			return DenominationSet{}, fmt.Errorf("%w: %d is not a multiple of %d", ErrNonCanonicalDenominations, sorted[i-1].Value, d.Value)
		}
	}

	return DenominationSet{denominations: sorted}, nil
}

// MustDenominationSet is NewDenominationSet for package-level constants
func MustDenominationSet(denominations ...Denomination) DenominationSet {
	set, err := NewDenominationSet(denominations...)
	if err != nil {
		panic(err)
	}
	return set
}

// ParseDenominations builds a set from a "NAME:VALUE,NAME:VALUE" list
func ParseDenominations(list string) (DenominationSet, error) {
	var denominations []Denomination
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawValue, ok := strings.Cut(part, ":")
		if !ok {
			return DenominationSet{}, fmt.Errorf("invalid denomination %q: expected NAME:VALUE", part)
		}
		value, err := strconv.ParseInt(strings.TrimSpace(rawValue), 10, 64)
		if err != nil {
			return DenominationSet{}, fmt.Errorf("invalid denomination value %q: %w", rawValue, err)
		}
		denominations = append(denominations, Denomination{
			Name:  strings.ToUpper(strings.TrimSpace(name)),
			Value: Amount(value),
		})
	}
	return NewDenominationSet(denominations...)
}

// Denominations returns the set in descending value order
func (s DenominationSet) Denominations() []Denomination {
	out := make([]Denomination, len(s.denominations))
	copy(out, s.denominations)
	return out
}

// Accepts reports whether value is one of the accepted coins
func (s DenominationSet) Accepts(value Amount) bool {
	for _, d := range s.denominations {
		if d.Value == value {
			return true
		}
	}
	return false
}

// Lookup finds a denomination by its (case-insensitive) name
func (s DenominationSet) Lookup(name string) (Denomination, bool) {
	for _, d := range s.denominations {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Denomination{}, false
}

// Largest returns the highest coin value, or zero for an empty set
func (s DenominationSet) Largest() Amount {
	if len(s.denominations) == 0 {
		return 0
	}
	return s.denominations[0].Value
}
