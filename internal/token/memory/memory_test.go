package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitsum/internal/core"
)

func TestTransferFrom(t *testing.T) {
	rail := New()
	rail.Mint("0xPayer", 100_000_000)
	rail.Approve("0xPayer", 50_000_000)

	err := rail.TransferFrom(context.Background(), "0xpayer", 50_000_000)
	require.NoError(t, err)

	assert.Equal(t, core.Amount(50_000_000), rail.BalanceOf("0xPayer"))
	assert.Equal(t, core.Amount(50_000_000), rail.Custody())
}

func TestTransferFrom_Failures(t *testing.T) {
	t.Run("no allowance", func(t *testing.T) {
		rail := New()
		rail.Mint("0xPayer", 100)
		err := rail.TransferFrom(context.Background(), "0xPayer", 100)
		assert.Error(t, err)
		assert.Equal(t, core.Amount(100), rail.BalanceOf("0xPayer"))
	})

	t.Run("allowance below amount", func(t *testing.T) {
		rail := New()
		rail.Mint("0xPayer", 100)
		rail.Approve("0xPayer", 50)
		assert.Error(t, rail.TransferFrom(context.Background(), "0xPayer", 100))
	})

	t.Run("insufficient balance", func(t *testing.T) {
		rail := New()
		rail.Approve("0xPayer", 100)
		assert.Error(t, rail.TransferFrom(context.Background(), "0xPayer", 100))
		assert.Equal(t, core.Amount(0), rail.Custody())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		rail := New()
		assert.Error(t, rail.TransferFrom(context.Background(), "0xPayer", 0))
	})
}

func TestAllowanceConsumed(t *testing.T) {
	rail := New()
	rail.Mint("0xPayer", 200)
	rail.Approve("0xPayer", 100)

	require.NoError(t, rail.TransferFrom(context.Background(), "0xPayer", 60))
	// 40 of allowance left; 60 more must fail.
	assert.Error(t, rail.TransferFrom(context.Background(), "0xPayer", 60))
	require.NoError(t, rail.TransferFrom(context.Background(), "0xPayer", 40))
}
