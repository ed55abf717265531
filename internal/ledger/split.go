// Package ledger implements the balance ledger and settlement engine:
// group registry, membership balances, equal expense splits and
// settlement allocation, with every state-changing operation serialized
// and applied atomically.
package ledger

import (
	"splitsum/internal/core"
)

// EqualShare returns each member's share of an expense using truncating
// integer division. The remainder amount - n*share is not redistributed:
// it is absorbed by no one, so a group's balance sum drifts by at most
// n-1 micro-units per expense. SplitRemainder exposes the drift.
func EqualShare(amount core.Amount, n int) core.Amount {
	if n <= 0 {
		return 0
	}
	return amount / core.Amount(n)
}

// SplitRemainder returns the truncation remainder of splitting amount
// across n members.
func SplitRemainder(amount core.Amount, n int) core.Amount {
	if n <= 0 {
		return 0
	}
	return amount % core.Amount(n)
}
