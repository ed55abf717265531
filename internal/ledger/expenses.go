package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"splitsum/internal/amqp"
	"splitsum/internal/core"
)

// CreateExpense records an expense paid by caller and splits it equally
// across memberAddresses. Every split address (and the caller) must
// already hold a membership in the group. The effect is atomic: the
// payer's balance is credited the full amount and every split member is
// debited one share.
func (s *Service) CreateExpense(ctx context.Context, caller, groupID string, amount core.Amount, description string, createdAt int64, memberAddresses []string) (*core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMember(ctx, groupID, caller); err != nil {
		return nil, err
	}

	createdAt = s.timestamp(createdAt)
	members := make([]string, 0, len(memberAddresses))
	for _, m := range memberAddresses {
		members = append(members, core.NormalizeAddress(m))
	}

	expense := &core.Expense{
		ID:              core.NewExpenseID(groupID, caller, amount, description, createdAt, members),
		GroupID:         groupID,
		PaidByAddress:   core.NormalizeAddress(caller),
		Amount:          amount,
		Description:     description,
		CreatedAt:       createdAt,
		MemberAddresses: members,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	for _, m := range members {
		ok, err := s.IsGroupMember(ctx, groupID, m)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("split member %s: %w", m, core.ErrNotGroupMember)
		}
	}

	share := EqualShare(amount, len(members))
	shares := make([]core.ExpenseMember, len(members))
	for i, m := range members {
		shares[i] = core.ExpenseMember{
			ExpenseID:     expense.ID,
			MemberAddress: m,
			ShareAmount:   share,
		}
	}

	// Credit the payer the full amount, then debit each split member
	// one share. The payer's net change is amount-share when included
	// in the split.
	deltas := make([]core.BalanceDelta, 0, len(members)+1)
	deltas = append(deltas, core.BalanceDelta{MemberAddress: expense.PaidByAddress, Amount: amount})
	for _, m := range members {
		deltas = append(deltas, core.BalanceDelta{MemberAddress: m, Amount: -share})
	}

	if err := s.store.CreateExpense(ctx, expense, shares, deltas); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense created",
		"expense_id", expense.ID,
		"group_id", groupID,
		"paid_by", expense.PaidByAddress,
		"amount", amount.String(),
		"share", share.String(),
		"split_members", len(members),
		"truncation_remainder", SplitRemainder(amount, len(members)).String())

	s.publish(ctx, amqp.NewExpenseCreatedEvent(expense.ID, groupID))
	return expense, nil
}

// GetExpense returns an expense by id.
func (s *Service) GetExpense(ctx context.Context, expenseID string) (*core.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListExpenseMembers returns the per-member share rows of an expense.
func (s *Service) ListExpenseMembers(ctx context.Context, expenseID string) ([]core.ExpenseMember, error) {
	if _, err := s.store.GetExpense(ctx, expenseID); err != nil {
		return nil, err
	}
	return s.store.ListExpenseMembers(ctx, expenseID)
}
