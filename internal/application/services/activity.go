package services

import (
	"context"

	"safechain-api/internal/apperr"
	"safechain-api/internal/application/ports"
	domain "safechain-api/internal/domain/activity"
	"safechain-api/internal/domain/user"
)

type ActivityService struct {
	activityRepository domain.Repository
	userRepository     user.Repository
}

func NewActivityService(
	activityRepository domain.Repository,
	userRepository user.Repository,
) ports.ActivityService {
	return &ActivityService{
		activityRepository: activityRepository,
		userRepository:     userRepository,
	}
}

func (as *ActivityService) ListMine(ctx context.Context, principal user.UUID) (domain.Entries, error) {
	actor, err := resolveActor(ctx, as.userRepository, principal)
	if err != nil {
		return nil, err
	}

	return as.activityRepository.FetchByActor(ctx, actor.ID)
}

func (as *ActivityService) ListAll(ctx context.Context, principal user.UUID) (domain.Entries, error) {
	actor, err := resolveActor(ctx, as.userRepository, principal)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.KindForbidden, "access denied, admin role required")
	}

	return as.activityRepository.FetchAll(ctx)
}
