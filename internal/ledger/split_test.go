package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"splitsum/internal/core"
)

func TestEqualShare(t *testing.T) {
	tests := []struct {
		name      string
		amount    core.Amount
		n         int
		share     core.Amount
		remainder core.Amount
	}{
		{name: "even split", amount: 90_000_000, n: 3, share: 30_000_000, remainder: 0},
		{name: "truncating split", amount: 100_000_000, n: 3, share: 33_333_333, remainder: 1},
		{name: "single member", amount: 42_000_000, n: 1, share: 42_000_000, remainder: 0},
		{name: "amount below member count", amount: 2, n: 3, share: 0, remainder: 2},
		{name: "no members", amount: 100, n: 0, share: 0, remainder: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.share, EqualShare(tt.amount, tt.n))
			assert.Equal(t, tt.remainder, SplitRemainder(tt.amount, tt.n))
		})
	}
}
