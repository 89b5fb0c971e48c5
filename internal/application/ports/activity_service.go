package ports

import (
	"context"

	"safechain-api/internal/domain/activity"
	"safechain-api/internal/domain/user"
)

type ActivityService interface {
	ListMine(ctx context.Context, principal user.UUID) (activity.Entries, error)
	ListAll(ctx context.Context, principal user.UUID) (activity.Entries, error)
}
