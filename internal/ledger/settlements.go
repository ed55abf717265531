package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"splitsum/internal/amqp"
	"splitsum/internal/core"
)

// SettleUp accepts a payment from caller and allocates it across the
// group's creditors. The external token transfer must succeed before
// any balance changes: a failed transfer leaves the ledger untouched.
// Amount beyond the sum of creditor balances is accepted by the
// transfer but allocated to no one.
func (s *Service) SettleUp(ctx context.Context, caller, groupID string, amount core.Amount, createdAt int64) (*core.Settlement, []Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMember(ctx, groupID, caller); err != nil {
		return nil, nil, err
	}

	createdAt = s.timestamp(createdAt)
	settlement := &core.Settlement{
		ID:           core.NewSettlementID(groupID, caller, amount, createdAt),
		GroupID:      groupID,
		PayerAddress: core.NormalizeAddress(caller),
		Amount:       amount,
		CreatedAt:    createdAt,
	}
	if err := settlement.Validate(); err != nil {
		return nil, nil, err
	}

	memberships, err := s.store.ListGroupMemberships(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("list memberships: %w", err)
	}
	creditors := make([]core.Membership, 0, len(memberships))
	for _, m := range memberships {
		if m.MemberAddress == settlement.PayerAddress || m.Balance <= 0 {
			continue
		}
		creditors = append(creditors, m)
	}
	allocs := Allocate(creditors, amount)

	if s.rail == nil {
		return nil, nil, core.ErrTransferFailed
	}
	// Fail closed: custody takes the tokens first, balances move only
	// after the rail confirms.
	if err := s.rail.TransferFrom(ctx, settlement.PayerAddress, amount); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", core.ErrTransferFailed, err)
	}

	members := make([]core.SettlementMember, len(allocs))
	deltas := make([]core.BalanceDelta, 0, 2*len(allocs))
	for i, a := range allocs {
		members[i] = core.SettlementMember{
			SettlementID:  settlement.ID,
			MemberAddress: a.MemberAddress,
			Amount:        a.Amount,
		}
		deltas = append(deltas,
			core.BalanceDelta{MemberAddress: a.MemberAddress, Amount: -a.Amount},
			core.BalanceDelta{MemberAddress: settlement.PayerAddress, Amount: a.Amount},
		)
	}

	if err := s.store.CreateSettlement(ctx, settlement, members, deltas); err != nil {
		return nil, nil, fmt.Errorf("create settlement: %w", err)
	}

	allocated := Allocated(allocs)
	if allocated < amount {
		slog.WarnContext(ctx, "Settlement amount exceeds creditor balances; excess unallocated",
			"settlement_id", settlement.ID,
			"amount", amount.String(),
			"allocated", allocated.String())
	}
	slog.InfoContext(ctx, "Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", groupID,
		"payer", settlement.PayerAddress,
		"amount", amount.String(),
		"creditors_paid", len(allocs))

	s.publish(ctx, amqp.NewSettlementCreatedEvent(settlement.ID, groupID))
	return settlement, allocs, nil
}

// GetSettlement returns a settlement by id.
func (s *Service) GetSettlement(ctx context.Context, settlementID string) (*core.Settlement, error) {
	return s.store.GetSettlement(ctx, settlementID)
}

// ListSettlementMembers returns the per-creditor allocation rows of a
// settlement.
func (s *Service) ListSettlementMembers(ctx context.Context, settlementID string) ([]core.SettlementMember, error) {
	if _, err := s.store.GetSettlement(ctx, settlementID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementMembers(ctx, settlementID)
}
