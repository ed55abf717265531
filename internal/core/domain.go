package core

import (
	"strings"
)

const maxDescriptionLen = 200

type (
	// Group is a named circle of members owned by its creator. Never
	// deleted; immutable after creation except through membership
	// operations.
	Group struct {
		ID           string
		OwnerAddress string
		Name         string
		Description  string
		CreatedAt    int64 // unix seconds
	}

	// Membership is one (group, member) balance cell. Balance is
	// positive when the group owes the member, negative when the member
	// owes the group. Per group the balances sum to zero, modulo the
	// documented split truncation remainder.
	Membership struct {
		GroupID       string
		MemberAddress string
		Balance       Amount
	}

	// Expense records a payment made by one member on behalf of a set
	// of members. Immutable once created.
	Expense struct {
		ID              string
		GroupID         string
		PaidByAddress   string
		Amount          Amount
		Description     string
		CreatedAt       int64
		MemberAddresses []string
	}

	// ExpenseMember is one member's share of an expense, derived at
	// creation time and never mutated.
	ExpenseMember struct {
		ExpenseID     string
		MemberAddress string
		ShareAmount   Amount
	}

	// Settlement records one settle-up payment by a debtor.
	Settlement struct {
		ID           string
		GroupID      string
		PayerAddress string
		Amount       Amount
		CreatedAt    int64
	}

	// SettlementMember records how much of a settlement was allocated
	// to one creditor.
	SettlementMember struct {
		SettlementID  string
		MemberAddress string
		Amount        Amount
	}

	// UserProfile is the self-managed profile of an address.
	UserProfile struct {
		UserAddress string
		Name        string
		Email       string
		UpdatedAt   int64
	}

	// Contact is an entry in one user's address book.
	Contact struct {
		OwnerAddress   string
		ContactAddress string
		Name           string
		Email          string
		CreatedAt      int64
	}

	// BalanceDelta is a signed adjustment to one membership balance.
	// Every balance mutation in the system is expressed as a set of
	// deltas applied atomically.
	BalanceDelta struct {
		MemberAddress string
		Amount        Amount
	}
)

// NormalizeAddress canonicalizes an address for keying: trimmed and
// lower-cased. An empty result is invalid.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

func (g Group) Validate() error {
	if NormalizeAddress(g.OwnerAddress) == "" {
		return ErrEmptyAddress
	}
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if len(g.Description) > maxDescriptionLen {
		return ErrDescriptionSize
	}
	return nil
}

func (e Expense) Validate() error {
	if NormalizeAddress(e.PaidByAddress) == "" {
		return ErrEmptyAddress
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(e.MemberAddresses) == 0 {
		return ErrNoSplitMembers
	}
	for _, m := range e.MemberAddresses {
		if NormalizeAddress(m) == "" {
			return ErrEmptyAddress
		}
	}
	if len(e.Description) > maxDescriptionLen {
		return ErrDescriptionSize
	}
	return nil
}

func (s Settlement) Validate() error {
	if NormalizeAddress(s.PayerAddress) == "" {
		return ErrEmptyAddress
	}
	return s.Amount.Validate()
}
