package services

import (
	"context"

	"safechain-api/internal/apperr"
	"safechain-api/internal/domain/user"
)

// resolveActor turns the principal uuid from the token into the full
// user row, or Unauthenticated when the account no longer exists.
func resolveActor(ctx context.Context, repo user.Repository, principal user.UUID) (*user.User, error) {
	u, err := repo.FetchByUUID(ctx, principal)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch user", err)
	}
	if u == nil {
		return nil, apperr.New(apperr.KindUnauthenticated, "no authenticated user found")
	}

	return u, nil
}
