package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"splitsum/internal/amqp"
	"splitsum/internal/core"
)

// CreateGroup registers a new group owned by owner. The owner always
// joins with a zero balance; duplicates in initialMembers (including the
// owner) collapse to a single membership. A second group with the same
// (owner, name) is rejected with ErrDuplicateGroup.
func (s *Service) CreateGroup(ctx context.Context, owner, name, description string, createdAt int64, initialMembers []string) (*core.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt = s.timestamp(createdAt)
	group := &core.Group{
		ID:           core.NewGroupID(owner, name, createdAt),
		OwnerAddress: core.NormalizeAddress(owner),
		Name:         name,
		Description:  description,
		CreatedAt:    createdAt,
	}
	if err := group.Validate(); err != nil {
		return nil, err
	}

	members := make([]string, 0, len(initialMembers))
	for _, m := range initialMembers {
		addr := core.NormalizeAddress(m)
		if addr == "" {
			return nil, core.ErrEmptyAddress
		}
		members = append(members, addr)
	}

	if err := s.store.CreateGroup(ctx, group, members); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	slog.InfoContext(ctx, "Group created",
		"group_id", group.ID,
		"owner", group.OwnerAddress,
		"members", len(members)+1)

	s.publish(ctx, amqp.NewGroupCreatedEvent(group.ID, group.OwnerAddress))
	return group, nil
}

// GetGroup returns a group by id.
func (s *Service) GetGroup(ctx context.Context, groupID string) (*core.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListMembershipGroups lists every group the caller belongs to, in
// creation order.
func (s *Service) ListMembershipGroups(ctx context.Context, caller string) ([]core.Group, error) {
	return s.store.ListMembershipGroups(ctx, core.NormalizeAddress(caller))
}

// AddMembership inserts a zero-balance membership. Owner-only;
// idempotent when the member is already present.
func (s *Service) AddMembership(ctx context.Context, caller, groupID, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(ctx, groupID, caller); err != nil {
		return err
	}
	addr := core.NormalizeAddress(member)
	if addr == "" {
		return core.ErrEmptyAddress
	}
	if err := s.store.AddMembership(ctx, groupID, addr); err != nil {
		return fmt.Errorf("add membership: %w", err)
	}

	slog.InfoContext(ctx, "Membership added", "group_id", groupID, "member", addr)
	s.publish(ctx, amqp.NewMembershipUpdatedEvent(groupID, addr))
	return nil
}

// RemoveMembership deletes a membership. Owner-only. Removal does not
// redistribute an outstanding balance: the group's zero-sum property
// holds over active memberships only from that point on.
func (s *Service) RemoveMembership(ctx context.Context, caller, groupID, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(ctx, groupID, caller); err != nil {
		return err
	}
	addr := core.NormalizeAddress(member)
	m, err := s.store.GetMembership(ctx, groupID, addr)
	if err != nil {
		return err
	}
	if m.Balance != 0 {
		slog.WarnContext(ctx, "Removing membership with outstanding balance",
			"group_id", groupID,
			"member", addr,
			"balance", m.Balance.String())
	}
	if err := s.store.RemoveMembership(ctx, groupID, addr); err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}

	slog.InfoContext(ctx, "Membership removed", "group_id", groupID, "member", addr)
	s.publish(ctx, amqp.NewMembershipUpdatedEvent(groupID, addr))
	return nil
}

// ListGroupMemberships lists the group's membership rows with balances,
// in insertion order.
func (s *Service) ListGroupMemberships(ctx context.Context, groupID string) ([]core.Membership, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListGroupMemberships(ctx, groupID)
}

// publish emits an event, logging instead of failing the operation when
// the broker is unavailable. State changes are already durable by the
// time events go out.
func (s *Service) publish(ctx context.Context, ev *amqp.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event",
			"kind", ev.Kind, "event_id", ev.ID, "error", err)
	}
}
