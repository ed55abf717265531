package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitsum/internal/core"
)

func creditor(addr string, balance core.Amount) core.Membership {
	return core.Membership{GroupID: "g1", MemberAddress: addr, Balance: balance}
}

func TestAllocateSingleCreditor(t *testing.T) {
	allocs := Allocate([]core.Membership{creditor("0xowner", 50_000_000)}, 50_000_000)

	require.Len(t, allocs, 1)
	assert.Equal(t, Allocation{MemberAddress: "0xowner", Amount: 50_000_000}, allocs[0])
}

func TestAllocateProportional(t *testing.T) {
	creditors := []core.Membership{
		creditor("0xalice", 30_000_000),
		creditor("0xbob", 10_000_000),
	}
	allocs := Allocate(creditors, 20_000_000)

	require.Len(t, allocs, 2)
	assert.Equal(t, Allocation{MemberAddress: "0xalice", Amount: 15_000_000}, allocs[0])
	assert.Equal(t, Allocation{MemberAddress: "0xbob", Amount: 5_000_000}, allocs[1])
}

func TestAllocateCappedAtBalance(t *testing.T) {
	creditors := []core.Membership{
		creditor("0xalice", 10_000_000),
		creditor("0xbob", 90_000_000),
	}
	allocs := Allocate(creditors, 120_000_000)

	// everyone is brought to zero and the excess stays unallocated
	require.Len(t, allocs, 2)
	assert.Equal(t, Allocation{MemberAddress: "0xbob", Amount: 90_000_000}, allocs[0])
	assert.Equal(t, Allocation{MemberAddress: "0xalice", Amount: 10_000_000}, allocs[1])
	assert.Equal(t, core.Amount(100_000_000), Allocated(allocs))
}

func TestAllocateTruncationTopUp(t *testing.T) {
	creditors := []core.Membership{
		creditor("0xalice", 1),
		creditor("0xbob", 1),
		creditor("0xcarol", 1),
	}
	allocs := Allocate(creditors, 2)

	// 2*1/3 truncates to zero for everyone; the top-up pass places both
	// micro-units in insertion order
	require.Len(t, allocs, 2)
	assert.Equal(t, core.Amount(2), Allocated(allocs))
	for _, a := range allocs {
		assert.Equal(t, core.Amount(1), a.Amount)
	}
}

func TestAllocateSkipsNonPositive(t *testing.T) {
	creditors := []core.Membership{
		creditor("0xalice", -5_000_000),
		creditor("0xbob", 0),
		creditor("0xcarol", 8_000_000),
	}
	allocs := Allocate(creditors, 3_000_000)

	require.Len(t, allocs, 1)
	assert.Equal(t, "0xcarol", allocs[0].MemberAddress)
	assert.Equal(t, core.Amount(3_000_000), allocs[0].Amount)
}

func TestAllocateNoCreditors(t *testing.T) {
	assert.Nil(t, Allocate(nil, 1_000_000))
	assert.Nil(t, Allocate([]core.Membership{creditor("0xalice", 0)}, 1_000_000))
	assert.Nil(t, Allocate([]core.Membership{creditor("0xalice", 100)}, 0))
}

func TestAllocateLargeAmounts(t *testing.T) {
	// balances big enough that amount*balance overflows int64
	creditors := []core.Membership{
		creditor("0xalice", 4_000_000_000_000_000),
		creditor("0xbob", 2_000_000_000_000_000),
	}
	allocs := Allocate(creditors, 3_000_000_000_000_000)

	require.Len(t, allocs, 2)
	assert.Equal(t, core.Amount(2_000_000_000_000_000), allocs[0].Amount)
	assert.Equal(t, core.Amount(1_000_000_000_000_000), allocs[1].Amount)
}
