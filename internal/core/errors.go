package core

import "errors"

// Ledger error kinds. Every failed operation surfaces one of these,
// possibly wrapped; callers dispatch with errors.Is.
var (
	ErrDuplicateGroup  = errors.New("group already exists")
	ErrNotFound        = errors.New("not found")
	ErrNotGroupOwner   = errors.New("not a group owner")
	ErrNotGroupMember  = errors.New("not in the group members")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTransferFailed  = errors.New("token transfer failed")
	ErrEmptyAddress    = errors.New("empty address")
	ErrEmptyName       = errors.New("empty name")
	ErrNoSplitMembers  = errors.New("expense requires at least one split member")
	ErrDescriptionSize = errors.New("description too long (max 200 characters)")
)
