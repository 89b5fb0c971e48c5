package ports

import (
	"context"

	"safechain-api/internal/domain/user"
)

type AdminService interface {
	ListUsers(ctx context.Context, principal user.UUID) (user.Users, error)
	DeleteUser(ctx context.Context, principal user.UUID, target user.UUID) (string, error)
}
