package services

import (
	"context"

	"go.uber.org/zap"

	"safechain-api/internal/apperr"
	"safechain-api/internal/application/ports"
	"safechain-api/internal/domain/user"
)

type AdminService struct {
	logger         *zap.Logger
	userRepository user.Repository
	blob           ports.BlobStore
}

func NewAdminService(
	logger *zap.Logger,
	userRepository user.Repository,
	blob ports.BlobStore,
) ports.AdminService {
	return &AdminService{
		logger:         logger,
		userRepository: userRepository,
		blob:           blob,
	}
}

func (as *AdminService) ListUsers(ctx context.Context, principal user.UUID) (user.Users, error) {
	actor, err := resolveActor(ctx, as.userRepository, principal)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.KindForbidden, "access denied, admin role required")
	}

	return as.userRepository.FetchAll(ctx)
}

// DeleteUser removes the account, its files and every share touching
// them in one transaction, then sweeps the blobs best-effort.
func (as *AdminService) DeleteUser(ctx context.Context, principal user.UUID, target user.UUID) (string, error) {
	actor, err := resolveActor(ctx, as.userRepository, principal)
	if err != nil {
		return "", err
	}
	if !actor.IsAdmin() {
		return "", apperr.New(apperr.KindForbidden, "access denied, admin role required")
	}
	if actor.UUID == target {
		return "", apperr.New(apperr.KindConflict, "cannot delete your own account")
	}

	u, err := as.userRepository.FetchByUUID(ctx, target)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to fetch user", err)
	}
	if u == nil {
		return "", apperr.New(apperr.KindNotFound, "user not found")
	}

	keys, err := as.userRepository.Delete(ctx, u.ID)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to delete user", err)
	}

	for _, key := range keys {
		if err = as.blob.Remove(key); err != nil {
			as.logger.Warn("failed to remove blob of deleted user",
				zap.String("storage_key", key), zap.Error(err))
		}
	}

	return "User deleted successfully", nil
}
