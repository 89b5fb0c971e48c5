package user

import (
	"context"
)

type Repository interface {
	FetchByUUID(ctx context.Context, uuid UUID) (*User, error)
	FetchByEmail(ctx context.Context, email string) (*User, error)
	FetchAll(ctx context.Context) (Users, error)
	Create(ctx context.Context, req User) (*User, error)
	// Delete removes the user row together with every share granted to
	// them and every file they own (shares first, then files), returning
	// the storage keys of the removed files so the caller can clean up
	// blobs after commit.
	Delete(ctx context.Context, id ID) ([]string, error)
}
