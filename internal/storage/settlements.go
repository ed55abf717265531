package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"splitsum/internal/core"
)

// CreateSettlement inserts the settlement, its allocation rows and the
// balance deltas in one transaction.
func (r *Repository) CreateSettlement(ctx context.Context, s *core.Settlement, members []core.SettlementMember, deltas []core.BalanceDelta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO settlements (id, group_id, payer_address, amount, created_at) VALUES (?, ?, ?, ?, ?)",
		s.ID, s.GroupID, s.PayerAddress, int64(s.Amount), s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}

	for _, m := range members {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO settlement_members (settlement_id, member_address, amount) VALUES (?, ?, ?)",
			m.SettlementID, m.MemberAddress, int64(m.Amount),
		); err != nil {
			return fmt.Errorf("insert settlement member: %w", err)
		}
	}

	for _, d := range deltas {
		if err := applyDelta(ctx, tx, s.GroupID, d.MemberAddress, d.Amount); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by id.
func (r *Repository) GetSettlement(ctx context.Context, id string) (*core.Settlement, error) {
	s := &core.Settlement{}
	var amount int64
	err := r.db.QueryRowContext(ctx,
		"SELECT id, group_id, payer_address, amount, created_at FROM settlements WHERE id = ?",
		id,
	).Scan(&s.ID, &s.GroupID, &s.PayerAddress, &amount, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get settlement: %w", err)
	}
	s.Amount = core.Amount(amount)
	return s, nil
}

// ListSettlementMembers returns the allocation rows in allocation order.
func (r *Repository) ListSettlementMembers(ctx context.Context, settlementID string) ([]core.SettlementMember, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT settlement_id, member_address, amount FROM settlement_members WHERE settlement_id = ? ORDER BY rowid",
		settlementID,
	)
	if err != nil {
		return nil, fmt.Errorf("list settlement members: %w", err)
	}
	defer rows.Close()

	var members []core.SettlementMember
	for rows.Next() {
		var m core.SettlementMember
		var amount int64
		if err := rows.Scan(&m.SettlementID, &m.MemberAddress, &amount); err != nil {
			return nil, fmt.Errorf("scan settlement member: %w", err)
		}
		m.Amount = core.Amount(amount)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlement members: %w", err)
	}
	return members, nil
}
