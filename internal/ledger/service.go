package ledger

import (
	"context"
	"sync"
	"time"

	"splitsum/internal/amqp"
	"splitsum/internal/core"
	"splitsum/internal/token"
)

// Store is the persistence surface the ledger drives. Implemented by
// storage.Repository; multi-row writes (group + memberships, expense +
// shares + deltas, settlement + allocations + deltas) must be atomic.
type Store interface {
	CreateGroup(ctx context.Context, g *core.Group, members []string) error
	GetGroup(ctx context.Context, id string) (*core.Group, error)
	ListMembershipGroups(ctx context.Context, member string) ([]core.Group, error)

	AddMembership(ctx context.Context, groupID, member string) error
	RemoveMembership(ctx context.Context, groupID, member string) error
	GetMembership(ctx context.Context, groupID, member string) (*core.Membership, error)
	ListGroupMemberships(ctx context.Context, groupID string) ([]core.Membership, error)

	CreateExpense(ctx context.Context, e *core.Expense, shares []core.ExpenseMember, deltas []core.BalanceDelta) error
	GetExpense(ctx context.Context, id string) (*core.Expense, error)
	ListExpenseMembers(ctx context.Context, expenseID string) ([]core.ExpenseMember, error)

	CreateSettlement(ctx context.Context, s *core.Settlement, members []core.SettlementMember, deltas []core.BalanceDelta) error
	GetSettlement(ctx context.Context, id string) (*core.Settlement, error)
	ListSettlementMembers(ctx context.Context, settlementID string) ([]core.SettlementMember, error)

	UpsertUserProfile(ctx context.Context, p *core.UserProfile) error
	GetUserProfile(ctx context.Context, addr string) (*core.UserProfile, error)
	AddContact(ctx context.Context, c *core.Contact) error
	ListContacts(ctx context.Context, owner string) ([]core.Contact, error)
}

// Publisher emits ledger events. A nil publisher disables emission.
type Publisher interface {
	PublishEvent(ctx context.Context, ev *amqp.Event) error
}

// Service is the ledger's single logical state machine. A mutex
// serializes all state-changing operations so no two interleave their
// reads and writes; reads go straight to the store.
type Service struct {
	mu        sync.Mutex
	store     Store
	publisher Publisher
	rail      token.Transferrer
	now       func() int64
}

// New creates a ledger service. publisher may be nil; rail is required
// for SettleUp and may be nil otherwise.
func New(store Store, publisher Publisher, rail token.Transferrer) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		rail:      rail,
		now:       func() int64 { return time.Now().Unix() },
	}
}

// timestamp fills a zero caller-supplied timestamp from the clock.
func (s *Service) timestamp(ts int64) int64 {
	if ts != 0 {
		return ts
	}
	return s.now()
}
