package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"splitsum/internal/core"
)

// CreateGroup inserts the group together with its owner membership and
// one zero-balance membership per initial member, atomically. A group
// with the same (owner, name) fails with ErrDuplicateGroup.
func (r *Repository) CreateGroup(ctx context.Context, g *core.Group, members []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM groups WHERE owner_address = ? AND name = ?)",
		g.OwnerAddress, g.Name,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check duplicate group: %w", err)
	}
	if exists {
		return core.ErrDuplicateGroup
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, owner_address, name, description, created_at) VALUES (?, ?, ?, ?, ?)",
		g.ID, g.OwnerAddress, g.Name, g.Description, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}

	// Owner joins first; duplicates among the initial members (or the
	// owner listed again) collapse via INSERT OR IGNORE.
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO memberships (group_id, member_address, balance) VALUES (?, ?, 0)",
		g.ID, g.OwnerAddress,
	); err != nil {
		return fmt.Errorf("insert owner membership: %w", err)
	}
	for _, m := range members {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO memberships (group_id, member_address, balance) VALUES (?, ?, 0)",
			g.ID, m,
		); err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by id.
func (r *Repository) GetGroup(ctx context.Context, id string) (*core.Group, error) {
	g := &core.Group{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, owner_address, name, description, created_at FROM groups WHERE id = ?",
		id,
	).Scan(&g.ID, &g.OwnerAddress, &g.Name, &g.Description, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}

// ListMembershipGroups returns the groups member belongs to, in group
// creation order.
func (r *Repository) ListMembershipGroups(ctx context.Context, member string) ([]core.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.owner_address, g.name, g.description, g.created_at
		 FROM groups g
		 JOIN memberships m ON m.group_id = g.id
		 WHERE m.member_address = ?
		 ORDER BY g.rowid`,
		member,
	)
	if err != nil {
		return nil, fmt.Errorf("list membership groups: %w", err)
	}
	defer rows.Close()

	var groups []core.Group
	for rows.Next() {
		var g core.Group
		if err := rows.Scan(&g.ID, &g.OwnerAddress, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

// AddMembership inserts a zero-balance membership row; a second insert
// for the same pair is a no-op.
func (r *Repository) AddMembership(ctx context.Context, groupID, member string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO memberships (group_id, member_address, balance) VALUES (?, ?, 0)",
		groupID, member,
	)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// RemoveMembership deletes the membership row; missing rows fail with
// ErrNotFound.
func (r *Repository) RemoveMembership(ctx context.Context, groupID, member string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM memberships WHERE group_id = ? AND member_address = ?",
		groupID, member,
	)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete membership rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("membership %s/%s: %w", groupID, member, core.ErrNotFound)
	}
	return nil
}

// GetMembership retrieves one balance cell.
func (r *Repository) GetMembership(ctx context.Context, groupID, member string) (*core.Membership, error) {
	m := &core.Membership{}
	var balance int64
	err := r.db.QueryRowContext(ctx,
		"SELECT group_id, member_address, balance FROM memberships WHERE group_id = ? AND member_address = ?",
		groupID, member,
	).Scan(&m.GroupID, &m.MemberAddress, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("membership %s/%s: %w", groupID, member, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	m.Balance = core.Amount(balance)
	return m, nil
}

// ListGroupMemberships returns the group's balance cells in insertion
// order.
func (r *Repository) ListGroupMemberships(ctx context.Context, groupID string) ([]core.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT group_id, member_address, balance FROM memberships WHERE group_id = ? ORDER BY rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []core.Membership
	for rows.Next() {
		var m core.Membership
		var balance int64
		if err := rows.Scan(&m.GroupID, &m.MemberAddress, &balance); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		m.Balance = core.Amount(balance)
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return memberships, nil
}
