package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitsum/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedGroup(t *testing.T, repo *Repository, id, owner string, members ...string) {
	t.Helper()
	g := &core.Group{ID: id, OwnerAddress: owner, Name: "trip", CreatedAt: 1700000000}
	require.NoError(t, repo.CreateGroup(context.Background(), g, members))
}

func TestCreateGroup(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	g := &core.Group{ID: "g1", OwnerAddress: "0xowner", Name: "trip", Description: "ski trip", CreatedAt: 1700000000}
	require.NoError(t, repo.CreateGroup(ctx, g, []string{"0xalice", "0xbob"}))

	got, err := repo.GetGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, g, got)

	// owner membership is created automatically
	memberships, err := repo.ListGroupMemberships(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, memberships, 3)
	assert.Equal(t, "0xowner", memberships[0].MemberAddress)
	for _, m := range memberships {
		assert.Equal(t, core.Amount(0), m.Balance)
	}
}

func TestCreateGroupDuplicate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedGroup(t, repo, "g1", "0xowner")

	dup := &core.Group{ID: "g2", OwnerAddress: "0xowner", Name: "trip", CreatedAt: 1700000001}
	err := repo.CreateGroup(ctx, dup, nil)
	assert.ErrorIs(t, err, core.ErrDuplicateGroup)

	// same name under a different owner is fine
	other := &core.Group{ID: "g3", OwnerAddress: "0xother", Name: "trip", CreatedAt: 1700000002}
	assert.NoError(t, repo.CreateGroup(ctx, other, nil))
}

func TestGetGroupNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetGroup(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListMembershipGroups(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	g1 := &core.Group{ID: "g1", OwnerAddress: "0xowner", Name: "trip", CreatedAt: 1}
	g2 := &core.Group{ID: "g2", OwnerAddress: "0xowner", Name: "rent", CreatedAt: 2}
	g3 := &core.Group{ID: "g3", OwnerAddress: "0xother", Name: "dinner", CreatedAt: 3}
	require.NoError(t, repo.CreateGroup(ctx, g1, []string{"0xalice"}))
	require.NoError(t, repo.CreateGroup(ctx, g2, nil))
	require.NoError(t, repo.CreateGroup(ctx, g3, []string{"0xalice"}))

	groups, err := repo.ListMembershipGroups(ctx, "0xalice")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "g1", groups[0].ID)
	assert.Equal(t, "g3", groups[1].ID)
}

func TestAddMembershipIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedGroup(t, repo, "g1", "0xowner")

	require.NoError(t, repo.AddMembership(ctx, "g1", "0xalice"))
	require.NoError(t, repo.ApplyDelta(ctx, "g1", "0xalice", 500))

	// adding again must not reset the balance
	require.NoError(t, repo.AddMembership(ctx, "g1", "0xalice"))
	m, err := repo.GetMembership(ctx, "g1", "0xalice")
	require.NoError(t, err)
	assert.Equal(t, core.Amount(500), m.Balance)
}

func TestRemoveMembership(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedGroup(t, repo, "g1", "0xowner", "0xalice")

	require.NoError(t, repo.RemoveMembership(ctx, "g1", "0xalice"))
	_, err := repo.GetMembership(ctx, "g1", "0xalice")
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = repo.RemoveMembership(ctx, "g1", "0xalice")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestApplyDelta(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedGroup(t, repo, "g1", "0xowner", "0xalice")

	require.NoError(t, repo.ApplyDelta(ctx, "g1", "0xalice", 1_500_000))
	require.NoError(t, repo.ApplyDelta(ctx, "g1", "0xalice", -2_000_000))

	m, err := repo.GetMembership(ctx, "g1", "0xalice")
	require.NoError(t, err)
	assert.Equal(t, core.Amount(-500_000), m.Balance)
}

func TestApplyDeltaUnknownMembership(t *testing.T) {
	repo := newTestRepository(t)

	seedGroup(t, repo, "g1", "0xowner")

	err := repo.ApplyDelta(context.Background(), "g1", "0xstranger", 100)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateExpense(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedGroup(t, repo, "g1", "0xowner", "0xalice", "0xbob")

	e := &core.Expense{
		ID:              "e1",
		GroupID:         "g1",
		PaidByAddress:   "0xowner",
		Amount:          90_000_000,
		Description:     "groceries",
		CreatedAt:       1700000100,
		MemberAddresses: []string{"0xalice", "0xbob"},
	}
	shares := []core.ExpenseMember{
		{ExpenseID: "e1", MemberAddress: "0xalice", ShareAmount: 45_000_000},
		{ExpenseID: "e1", MemberAddress: "0xbob", ShareAmount: 45_000_000},
	}
	deltas := []core.BalanceDelta{
		{MemberAddress: "0xowner", Amount: 90_000_000},
		{MemberAddress: "0xalice", Amount: -45_000_000},
		{MemberAddress: "0xbob", Amount: -45_000_000},
	}
	require.NoError(t, repo.CreateExpense(ctx, e, shares, deltas))

	got, err := repo.GetExpense(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, e, got)

	listed, err := repo.ListExpenseMembers(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, shares, listed)

	owner, err := repo.GetMembership(ctx, "g1", "0xowner")
	require.NoError(t, err)
	assert.Equal(t, core.Amount(90_000_000), owner.Balance)
	alice, err := repo.GetMembership(ctx, "g1", "0xalice")
	require.NoError(t, err)
	assert.Equal(t, core.Amount(-45_000_000), alice.Balance)
}

func TestCreateExpenseRollsBackOnBadDelta(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedGroup(t, repo, "g1", "0xowner")

	e := &core.Expense{ID: "e1", GroupID: "g1", PaidByAddress: "0xowner", Amount: 100, CreatedAt: 1}
	deltas := []core.BalanceDelta{
		{MemberAddress: "0xowner", Amount: 100},
		{MemberAddress: "0xstranger", Amount: -100},
	}
	err := repo.CreateExpense(ctx, e, nil, deltas)
	require.ErrorIs(t, err, core.ErrNotFound)

	// nothing from the failed transaction is visible
	_, err = repo.GetExpense(ctx, "e1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	owner, err := repo.GetMembership(ctx, "g1", "0xowner")
	require.NoError(t, err)
	assert.Equal(t, core.Amount(0), owner.Balance)
}

func TestCreateSettlement(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedGroup(t, repo, "g1", "0xowner", "0xalice")
	require.NoError(t, repo.ApplyDelta(ctx, "g1", "0xowner", 50_000_000))
	require.NoError(t, repo.ApplyDelta(ctx, "g1", "0xalice", -50_000_000))

	s := &core.Settlement{ID: "s1", GroupID: "g1", PayerAddress: "0xalice", Amount: 50_000_000, CreatedAt: 1700000200}
	members := []core.SettlementMember{
		{SettlementID: "s1", MemberAddress: "0xowner", Amount: 50_000_000},
	}
	deltas := []core.BalanceDelta{
		{MemberAddress: "0xalice", Amount: 50_000_000},
		{MemberAddress: "0xowner", Amount: -50_000_000},
	}
	require.NoError(t, repo.CreateSettlement(ctx, s, members, deltas))

	got, err := repo.GetSettlement(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	listed, err := repo.ListSettlementMembers(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, members, listed)

	owner, err := repo.GetMembership(ctx, "g1", "0xowner")
	require.NoError(t, err)
	assert.Equal(t, core.Amount(0), owner.Balance)
	alice, err := repo.GetMembership(ctx, "g1", "0xalice")
	require.NoError(t, err)
	assert.Equal(t, core.Amount(0), alice.Balance)
}

func TestUserProfileUpsert(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	p := &core.UserProfile{UserAddress: "0xalice", Name: "Alice", Email: "alice@example.com", UpdatedAt: 1}
	require.NoError(t, repo.UpsertUserProfile(ctx, p))

	p.Name = "Alice B"
	p.UpdatedAt = 2
	require.NoError(t, repo.UpsertUserProfile(ctx, p))

	got, err := repo.GetUserProfile(ctx, "0xalice")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = repo.GetUserProfile(ctx, "0xbob")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestContacts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c1 := &core.Contact{OwnerAddress: "0xalice", ContactAddress: "0xbob", Name: "Bob", CreatedAt: 1}
	c2 := &core.Contact{OwnerAddress: "0xalice", ContactAddress: "0xcarol", Name: "Carol", CreatedAt: 2}
	require.NoError(t, repo.AddContact(ctx, c1))
	require.NoError(t, repo.AddContact(ctx, c2))

	// re-adding updates in place
	c1.Name = "Bobby"
	require.NoError(t, repo.AddContact(ctx, c1))

	contacts, err := repo.ListContacts(ctx, "0xalice")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Bobby", contacts[0].Name)
	assert.Equal(t, "0xcarol", contacts[1].ContactAddress)

	contacts, err = repo.ListContacts(ctx, "0xbob")
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
