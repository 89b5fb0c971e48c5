package services

import (
	"safechain-api/internal/domain/file"
	"safechain-api/internal/domain/user"
)

type Operation string

const (
	OpRead       Operation = "READ"
	OpShare      Operation = "SHARE"
	OpUnshare    Operation = "UNSHARE"
	OpListShares Operation = "LIST_SHARES"
	OpDelete     Operation = "DELETE"
)

// CanAccess is the single access-control decision for file operations.
// It is pure: hasShare must be resolved by the caller beforehand.
//
// Reads are owner-or-shared only; admins get no download bypass. Share
// management belongs to the owner alone. Deletes belong to the owner or
// an admin.
func CanAccess(actor *user.User, f *file.File, op Operation, hasShare bool) bool {
	if actor == nil || f == nil {
		return false
	}

	switch op {
	case OpRead:
		return f.OwnedBy(actor) || hasShare
	case OpShare, OpUnshare, OpListShares:
		return f.OwnedBy(actor)
	case OpDelete:
		return f.OwnedBy(actor) || actor.IsAdmin()
	default:
		return false
	}
}
