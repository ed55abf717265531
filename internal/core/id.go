package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Entity ids are pure functions of their creation inputs: no hidden
// counters, so replaying the same inputs yields the same id. A group id
// depends only on (owner, name); expense and settlement ids fold in the
// full creation payload so two different operations in the same second
// stay distinct.

func hashID(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(h[:])
}

// NewGroupID derives the id for a group created by owner with name at
// the given timestamp.
func NewGroupID(owner, name string, createdAt int64) string {
	return hashID("group", NormalizeAddress(owner), name, strconv.FormatInt(createdAt, 10))
}

// NewExpenseID derives the id for an expense from its full creation
// payload.
func NewExpenseID(groupID, paidBy string, amount Amount, description string, createdAt int64, members []string) string {
	parts := []string{
		"expense", groupID, NormalizeAddress(paidBy),
		strconv.FormatInt(int64(amount), 10), description,
		strconv.FormatInt(createdAt, 10),
	}
	for _, m := range members {
		parts = append(parts, NormalizeAddress(m))
	}
	return hashID(parts...)
}

// NewSettlementID derives the id for a settlement.
func NewSettlementID(groupID, payer string, amount Amount, createdAt int64) string {
	return hashID("settlement", groupID, NormalizeAddress(payer),
		strconv.FormatInt(int64(amount), 10), strconv.FormatInt(createdAt, 10))
}
