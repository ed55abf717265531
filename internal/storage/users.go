package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"splitsum/internal/core"
)

// UpsertUserProfile creates or replaces the profile of an address.
func (r *Repository) UpsertUserProfile(ctx context.Context, p *core.UserProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_address, name, email, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_address) DO UPDATE SET name = excluded.name, email = excluded.email, updated_at = excluded.updated_at`,
		p.UserAddress, p.Name, p.Email, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user profile: %w", err)
	}
	return nil
}

// GetUserProfile retrieves the profile of an address.
func (r *Repository) GetUserProfile(ctx context.Context, userAddress string) (*core.UserProfile, error) {
	p := &core.UserProfile{}
	err := r.db.QueryRowContext(ctx,
		"SELECT user_address, name, email, updated_at FROM user_profiles WHERE user_address = ?",
		userAddress,
	).Scan(&p.UserAddress, &p.Name, &p.Email, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userAddress, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return p, nil
}

// AddContact adds an address book entry, replacing any previous entry
// for the same contact address.
func (r *Repository) AddContact(ctx context.Context, c *core.Contact) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (owner_address, contact_address, name, email, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(owner_address, contact_address) DO UPDATE SET name = excluded.name, email = excluded.email`,
		c.OwnerAddress, c.ContactAddress, c.Name, c.Email, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add contact: %w", err)
	}
	return nil
}

// ListContacts returns one user's address book in insertion order.
func (r *Repository) ListContacts(ctx context.Context, ownerAddress string) ([]core.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT owner_address, contact_address, name, email, created_at FROM contacts WHERE owner_address = ? ORDER BY rowid",
		ownerAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []core.Contact
	for rows.Next() {
		var c core.Contact
		if err := rows.Scan(&c.OwnerAddress, &c.ContactAddress, &c.Name, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}
