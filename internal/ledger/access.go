package ledger

import (
	"context"
	"errors"

	"splitsum/internal/core"
)

// Access checks are pure predicate reads over the registry and the
// membership table; they never mutate state.

// IsGroupOwner reports whether addr owns the group.
func (s *Service) IsGroupOwner(ctx context.Context, groupID, addr string) (bool, error) {
	g, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return g.OwnerAddress == core.NormalizeAddress(addr), nil
}

// IsGroupMember reports whether addr holds a membership in the group.
func (s *Service) IsGroupMember(ctx context.Context, groupID, addr string) (bool, error) {
	_, err := s.store.GetMembership(ctx, groupID, addr)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// requireOwner maps a failed ownership check to ErrNotGroupOwner.
func (s *Service) requireOwner(ctx context.Context, groupID, addr string) error {
	ok, err := s.IsGroupOwner(ctx, groupID, addr)
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrNotGroupOwner
	}
	return nil
}

// requireMember maps a failed membership check to ErrNotGroupMember.
// The group must exist; an unknown group surfaces ErrNotFound.
func (s *Service) requireMember(ctx context.Context, groupID, addr string) error {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return err
	}
	ok, err := s.IsGroupMember(ctx, groupID, addr)
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrNotGroupMember
	}
	return nil
}
