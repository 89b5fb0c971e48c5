package activity

import (
	"context"

	"safechain-api/internal/domain/user"
)

// Repository is an append-only sink: entries are never updated or
// deleted once written.
type Repository interface {
	Append(ctx context.Context, e *Entry) (*Entry, error)
	FetchAll(ctx context.Context) (Entries, error)
	FetchByActor(ctx context.Context, actorID user.ID) (Entries, error)
}
