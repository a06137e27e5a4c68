package vending

// CoinCount is one line of a change breakdown
type CoinCount struct {
	Denomination Denomination `json:"denomination"`
	Count        int          `json:"count"`
}

// GreedyChange pays out amounts by greedy descent through a canonical
// denomination set, which yields the minimum number of coins.
type GreedyChange struct {
	denominations DenominationSet
}

// NewGreedyChange creates a change calculator over the given set
func NewGreedyChange(denominations DenominationSet) GreedyChange {
	return GreedyChange{denominations: denominations}
}

// Breakdown splits amount into coins, largest first. Denominations that are not
// used are omitted, so a zero amount yields an empty breakdown.
func (g GreedyChange) Breakdown(amount Amount) ([]CoinCount, error) {
	if amount < 0 {
		return nil, ErrUnrepresentableAmount{Amount: amount, Remainder: amount}
	}

	breakdown := []CoinCount{}
	remaining := amount
	for _, d := range g.denominations.denominations {
		count := remaining / d.Value
		if count == 0 {
			continue
		}
		breakdown = append(breakdown, CoinCount{Denomination: d, Count: int(count)})
		remaining -= count * d.Value
	}

	if remaining != 0 {
		return nil, ErrUnrepresentableAmount{Amount: amount, Remainder: remaining}
	}
	return breakdown, nil
}

// TotalChange sums the value of a breakdown
func TotalChange(breakdown []CoinCount) Amount {
	var total Amount
	for _, c := range breakdown {
		total += c.Denomination.Value * Amount(c.Count)
	}
	return total
}
