package file

import (
	"context"

	"safechain-api/internal/domain/activity"
	"safechain-api/internal/domain/user"
)

// Repository owns both file metadata and share rows. Mutations that the
// audit trail must witness take the activity entry and write it in the
// same transaction, so a lost log entry aborts the mutation.
type Repository interface {
	FetchByUUID(ctx context.Context, uuid UUID) (*File, error)
	FetchOwnedBy(ctx context.Context, ownerID user.ID) (Files, error)
	FetchSharedWith(ctx context.Context, userID user.ID) (Files, error)

	Create(ctx context.Context, f *File, entry *activity.Entry) (*File, error)
	CreateShare(ctx context.Context, fileID ID, targetID user.ID, grantedBy user.ID, entry *activity.Entry) error
	DeleteShare(ctx context.Context, fileID ID, targetID user.ID, entry *activity.Entry) error
	FetchShares(ctx context.Context, fileID ID) (Shares, error)
	HasShare(ctx context.Context, fileID ID, userID user.ID) (bool, error)

	// Delete removes the file row and all of its shares in one
	// transaction. Blob removal is the caller's concern.
	Delete(ctx context.Context, fileID ID) error
}
