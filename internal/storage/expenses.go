package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"splitsum/internal/core"
)

// CreateExpense inserts the expense, its per-member share rows and the
// balance deltas in one transaction. A delta referencing a missing
// membership aborts the whole write.
func (r *Repository) CreateExpense(ctx context.Context, e *core.Expense, shares []core.ExpenseMember, deltas []core.BalanceDelta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, paid_by_address, amount, description, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.GroupID, e.PaidByAddress, int64(e.Amount), e.Description, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	for _, s := range shares {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_members (expense_id, member_address, share_amount) VALUES (?, ?, ?)",
			s.ExpenseID, s.MemberAddress, int64(s.ShareAmount),
		); err != nil {
			return fmt.Errorf("insert expense member: %w", err)
		}
	}

	for _, d := range deltas {
		if err := applyDelta(ctx, tx, e.GroupID, d.MemberAddress, d.Amount); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its ordered split member list.
func (r *Repository) GetExpense(ctx context.Context, id string) (*core.Expense, error) {
	e := &core.Expense{}
	var amount int64
	err := r.db.QueryRowContext(ctx,
		"SELECT id, group_id, paid_by_address, amount, description, created_at FROM expenses WHERE id = ?",
		id,
	).Scan(&e.ID, &e.GroupID, &e.PaidByAddress, &amount, &e.Description, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	e.Amount = core.Amount(amount)

	members, err := r.ListExpenseMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		e.MemberAddresses = append(e.MemberAddresses, m.MemberAddress)
	}
	return e, nil
}

// ListExpenseMembers returns the share rows in split order.
func (r *Repository) ListExpenseMembers(ctx context.Context, expenseID string) ([]core.ExpenseMember, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT expense_id, member_address, share_amount FROM expense_members WHERE expense_id = ? ORDER BY rowid",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expense members: %w", err)
	}
	defer rows.Close()

	var members []core.ExpenseMember
	for rows.Next() {
		var m core.ExpenseMember
		var share int64
		if err := rows.Scan(&m.ExpenseID, &m.MemberAddress, &share); err != nil {
			return nil, fmt.Errorf("scan expense member: %w", err)
		}
		m.ShareAmount = core.Amount(share)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense members: %w", err)
	}
	return members, nil
}
