package ledger

import (
	"math/big"
	"sort"

	"splitsum/internal/core"
)

// Allocation is one creditor's slice of a settlement payment.
type Allocation struct {
	MemberAddress string
	Amount        core.Amount
}

// Allocate distributes a settlement amount across creditors
// proportionally to their current balances, largest balance first. Each
// allocation is capped at the creditor's balance so nobody is driven
// negative; truncation leftovers are topped up largest-first within the
// same caps. Whatever cannot be placed once every creditor is at zero
// stays unallocated.
//
// The creditors slice must contain only strictly positive balances with
// the payer already excluded; entries violating that are skipped.
func Allocate(creditors []core.Membership, amount core.Amount) []Allocation {
	if amount <= 0 {
		return nil
	}

	eligible := make([]core.Membership, 0, len(creditors))
	var total core.Amount
	for _, c := range creditors {
		if c.Balance <= 0 {
			continue
		}
		eligible = append(eligible, c)
		total += c.Balance
	}
	if total == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Balance > eligible[j].Balance
	})

	allocs := make([]core.Amount, len(eligible))
	remaining := amount

	// Proportional pass, truncating. The product amount*balance can
	// exceed int64, so it goes through big.Int.
	for i, c := range eligible {
		share := proportion(amount, c.Balance, total)
		if share > c.Balance {
			share = c.Balance
		}
		if share > remaining {
			share = remaining
		}
		allocs[i] = share
		remaining -= share
	}

	// Top-up pass for truncation leftovers, largest creditor first.
	for i, c := range eligible {
		if remaining == 0 {
			break
		}
		headroom := c.Balance - allocs[i]
		if headroom <= 0 {
			continue
		}
		if headroom > remaining {
			headroom = remaining
		}
		allocs[i] += headroom
		remaining -= headroom
	}

	out := make([]Allocation, 0, len(eligible))
	for i, c := range eligible {
		if allocs[i] == 0 {
			continue
		}
		out = append(out, Allocation{MemberAddress: c.MemberAddress, Amount: allocs[i]})
	}
	return out
}

// proportion computes amount*part/total with truncation, without int64
// overflow on the intermediate product.
func proportion(amount, part, total core.Amount) core.Amount {
	p := new(big.Int).Mul(big.NewInt(int64(amount)), big.NewInt(int64(part)))
	p.Quo(p, big.NewInt(int64(total)))
	return core.Amount(p.Int64())
}

// Allocated sums the amounts placed by Allocate.
func Allocated(allocs []Allocation) core.Amount {
	var sum core.Amount
	for _, a := range allocs {
		sum += a.Amount
	}
	return sum
}
