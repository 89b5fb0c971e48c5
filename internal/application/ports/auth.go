package ports

import (
	"context"

	"safechain-api/internal/domain/user"
)

type Auth interface {
	Register(ctx context.Context, fullName, email, password string) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
}
