package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupValidate(t *testing.T) {
	valid := Group{OwnerAddress: "0xOwner", Name: "Friend Hangouts"}
	assert.NoError(t, valid.Validate())

	t.Run("empty owner", func(t *testing.T) {
		g := valid
		g.OwnerAddress = "  "
		assert.ErrorIs(t, g.Validate(), ErrEmptyAddress)
	})
	t.Run("empty name", func(t *testing.T) {
		g := valid
		g.Name = ""
		assert.ErrorIs(t, g.Validate(), ErrEmptyName)
	})
	t.Run("long description", func(t *testing.T) {
		g := valid
		g.Description = string(make([]byte, 201))
		assert.ErrorIs(t, g.Validate(), ErrDescriptionSize)
	})
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		PaidByAddress:   "0xPayer",
		Amount:          150_000_000,
		MemberAddresses: []string{"0xPayer", "0xM2"},
	}
	assert.NoError(t, valid.Validate())

	t.Run("zero amount", func(t *testing.T) {
		e := valid
		e.Amount = 0
		assert.ErrorIs(t, e.Validate(), ErrInvalidAmount)
	})
	t.Run("no members", func(t *testing.T) {
		e := valid
		e.MemberAddresses = nil
		assert.ErrorIs(t, e.Validate(), ErrNoSplitMembers)
	})
	t.Run("blank member", func(t *testing.T) {
		e := valid
		e.MemberAddresses = []string{"0xPayer", ""}
		assert.ErrorIs(t, e.Validate(), ErrEmptyAddress)
	})
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xabcdef", NormalizeAddress("  0xABCdef "))
	assert.Equal(t, "", NormalizeAddress("   "))
}

func TestDeterministicIDs(t *testing.T) {
	a := NewGroupID("0xOwner", "trip", 1700000000)
	b := NewGroupID("0xowner", "trip", 1700000000)
	assert.Equal(t, a, b, "group ids are case-insensitive on owner")
	assert.Len(t, a, 64)

	c := NewGroupID("0xOwner", "trip", 1700000001)
	assert.NotEqual(t, a, c, "timestamp participates in group id")

	e1 := NewExpenseID("gid", "0xP", 100, "dinner", 1, []string{"0xA", "0xB"})
	e2 := NewExpenseID("gid", "0xP", 100, "dinner", 1, []string{"0xB", "0xA"})
	assert.NotEqual(t, e1, e2, "member order participates in expense id")
}
