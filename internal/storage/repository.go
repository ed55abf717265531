// Package storage is the SQLite persistence layer for the ledger. All
// multi-row writes run in a single transaction, and every balance
// mutation funnels through applyDelta.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"splitsum/internal/core"
)

type Repository struct {
	db *sql.DB
}

func New(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ApplyDelta is the single balance-mutation primitive. It fails with
// ErrNotFound when the membership row does not exist.
func (r *Repository) ApplyDelta(ctx context.Context, groupID, member string, delta core.Amount) error {
	return applyDelta(ctx, r.db, groupID, member, delta)
}

// execer is satisfied by both *sql.DB and *sql.Tx so applyDelta can run
// standalone or inside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func applyDelta(ctx context.Context, ex execer, groupID, member string, delta core.Amount) error {
	res, err := ex.ExecContext(ctx,
		"UPDATE memberships SET balance = balance + ? WHERE group_id = ? AND member_address = ?",
		int64(delta), groupID, member,
	)
	if err != nil {
		return fmt.Errorf("apply delta: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply delta rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("membership %s/%s: %w", groupID, member, core.ErrNotFound)
	}
	return nil
}
