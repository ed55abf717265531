package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"splitsum/internal/amqp"
	"splitsum/internal/core"
)

// UpdateUserProfile upserts the caller's profile.
func (s *Service) UpdateUserProfile(ctx context.Context, caller, name, email string) (*core.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := core.NormalizeAddress(caller)
	if addr == "" {
		return nil, core.ErrEmptyAddress
	}
	if strings.TrimSpace(name) == "" {
		return nil, core.ErrEmptyName
	}

	profile := &core.UserProfile{
		UserAddress: addr,
		Name:        name,
		Email:       email,
		UpdatedAt:   s.now(),
	}
	if err := s.store.UpsertUserProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	slog.InfoContext(ctx, "User profile updated", "address", addr)
	s.publish(ctx, amqp.NewUserProfileUpdatedEvent(addr))
	return profile, nil
}

// GetUserProfile returns the caller's profile.
func (s *Service) GetUserProfile(ctx context.Context, caller string) (*core.UserProfile, error) {
	return s.store.GetUserProfile(ctx, core.NormalizeAddress(caller))
}

// AddContact adds an entry to the caller's contact book.
func (s *Service) AddContact(ctx context.Context, caller, contactAddr, name, email string) (*core.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := core.NormalizeAddress(caller)
	addr := core.NormalizeAddress(contactAddr)
	if owner == "" || addr == "" {
		return nil, core.ErrEmptyAddress
	}

	contact := &core.Contact{
		OwnerAddress:   owner,
		ContactAddress: addr,
		Name:           name,
		Email:          email,
		CreatedAt:      s.now(),
	}
	if err := s.store.AddContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("add contact: %w", err)
	}

	slog.InfoContext(ctx, "Contact added", "owner", owner, "contact", addr)
	return contact, nil
}

// ListContacts lists the caller's contacts in insertion order.
func (s *Service) ListContacts(ctx context.Context, caller string) ([]core.Contact, error) {
	return s.store.ListContacts(ctx, core.NormalizeAddress(caller))
}
