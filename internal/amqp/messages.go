package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event kinds emitted by the ledger, one per state-changing operation.
const (
	KindGroupCreated       = "group.created"
	KindMembershipUpdated  = "membership.updated"
	KindExpenseCreated     = "expense.created"
	KindSettlementCreated  = "settlement.created"
	KindUserProfileUpdated = "user.profile_updated"
)

// Event is the envelope published for every ledger mutation. It carries
// the identifiers a consumer needs to fetch the resulting resource;
// full payloads stay in the ledger.
type Event struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	GroupID       string    `json:"group_id,omitempty"`
	OwnerAddress  string    `json:"owner_address,omitempty"`
	MemberAddress string    `json:"member_address,omitempty"`
	ExpenseID     string    `json:"expense_id,omitempty"`
	SettlementID  string    `json:"settlement_id,omitempty"`
	UserAddress   string    `json:"user_address,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func newEvent(kind string) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	}
}

// NewGroupCreatedEvent announces a new group.
func NewGroupCreatedEvent(groupID, owner string) *Event {
	ev := newEvent(KindGroupCreated)
	ev.GroupID = groupID
	ev.OwnerAddress = owner
	return ev
}

// NewMembershipUpdatedEvent announces an added or removed membership.
func NewMembershipUpdatedEvent(groupID, member string) *Event {
	ev := newEvent(KindMembershipUpdated)
	ev.GroupID = groupID
	ev.MemberAddress = member
	return ev
}

// NewExpenseCreatedEvent announces a recorded expense.
func NewExpenseCreatedEvent(expenseID, groupID string) *Event {
	ev := newEvent(KindExpenseCreated)
	ev.ExpenseID = expenseID
	ev.GroupID = groupID
	return ev
}

// NewSettlementCreatedEvent announces a recorded settlement.
func NewSettlementCreatedEvent(settlementID, groupID string) *Event {
	ev := newEvent(KindSettlementCreated)
	ev.SettlementID = settlementID
	ev.GroupID = groupID
	return ev
}

// NewUserProfileUpdatedEvent announces a profile upsert.
func NewUserProfileUpdatedEvent(addr string) *Event {
	ev := newEvent(KindUserProfileUpdated)
	ev.UserAddress = addr
	return ev
}

// ToJSON converts the event to JSON bytes.
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON parses an event from JSON bytes.
func EventFromJSON(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
