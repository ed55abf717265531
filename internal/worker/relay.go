// Package worker processes ledger events off the queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"splitsum/internal/amqp"
	"splitsum/internal/core"
	"splitsum/internal/storage"
)

// Relay consumes ledger events and emits audit log lines enriched with
// the current state of the referenced resource. Unknown kinds are
// logged and dropped rather than requeued.
type Relay struct {
	storage *storage.Repository
}

func NewRelay(storage *storage.Repository) *Relay {
	return &Relay{storage: storage}
}

// HandleEvent processes a single ledger event. A non-nil return requeues
// the delivery, so resources that are not yet visible come back around.
func (w *Relay) HandleEvent(ctx context.Context, ev *amqp.Event) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"event_id", ev.ID,
		"kind", ev.Kind)

	switch ev.Kind {
	case amqp.KindGroupCreated:
		group, err := w.storage.GetGroup(ctx, ev.GroupID)
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}
		slog.InfoContext(ctx, "Group created",
			"group_id", group.ID,
			"owner", group.OwnerAddress,
			"name", group.Name)

	case amqp.KindMembershipUpdated:
		// The membership may already be gone when this was a removal.
		m, err := w.storage.GetMembership(ctx, ev.GroupID, ev.MemberAddress)
		if errors.Is(err, core.ErrNotFound) {
			slog.InfoContext(ctx, "Membership removed",
				"group_id", ev.GroupID,
				"member", ev.MemberAddress)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get membership: %w", err)
		}
		slog.InfoContext(ctx, "Membership added",
			"group_id", m.GroupID,
			"member", m.MemberAddress,
			"balance", m.Balance.String())

	case amqp.KindExpenseCreated:
		expense, err := w.storage.GetExpense(ctx, ev.ExpenseID)
		if err != nil {
			return fmt.Errorf("get expense: %w", err)
		}
		slog.InfoContext(ctx, "Expense recorded",
			"expense_id", expense.ID,
			"group_id", expense.GroupID,
			"paid_by", expense.PaidByAddress,
			"amount", expense.Amount.String(),
			"split_members", len(expense.MemberAddresses))

	case amqp.KindSettlementCreated:
		settlement, err := w.storage.GetSettlement(ctx, ev.SettlementID)
		if err != nil {
			return fmt.Errorf("get settlement: %w", err)
		}
		members, err := w.storage.ListSettlementMembers(ctx, settlement.ID)
		if err != nil {
			return fmt.Errorf("list settlement members: %w", err)
		}
		slog.InfoContext(ctx, "Settlement recorded",
			"settlement_id", settlement.ID,
			"group_id", settlement.GroupID,
			"payer", settlement.PayerAddress,
			"amount", settlement.Amount.String(),
			"creditors_paid", len(members))

	case amqp.KindUserProfileUpdated:
		profile, err := w.storage.GetUserProfile(ctx, ev.UserAddress)
		if err != nil {
			return fmt.Errorf("get user profile: %w", err)
		}
		slog.InfoContext(ctx, "User profile updated",
			"address", profile.UserAddress,
			"name", profile.Name)

	default:
		slog.WarnContext(ctx, "Unknown event kind, dropping",
			"event_id", ev.ID,
			"kind", ev.Kind)
	}

	return nil
}
