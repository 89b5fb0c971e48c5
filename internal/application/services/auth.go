package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"safechain-api/internal/apperr"
	"safechain-api/internal/application/ports"
	"safechain-api/internal/domain/user"
	"safechain-api/internal/infrastructure/jwt"
	userDB "safechain-api/internal/infrastructure/db/postgres/user"
)

const tokenTTL = 24 * time.Hour

// normalizeEmail is the single canonical form for stored and queried
// addresses; every service boundary taking an email goes through it.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AuthService struct {
	userRepository user.Repository
	jwtService     *jwt.Service
}

func NewAuthService(
	userRepository user.Repository,
	jwtService *jwt.Service,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

// Register creates a USER-role account. Roles are immutable through the
// API; admins are promoted out of band.
func (as *AuthService) Register(ctx context.Context, fullName, email, password string) (*user.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	hashStr := string(hash)
	u, err := as.userRepository.Create(ctx, user.User{
		Email:        normalizeEmail(email),
		FullName:     fullName,
		PasswordHash: &hashStr,
		Role:         user.RoleUser,
	})
	if err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) {
			return nil, "", apperr.New(apperr.KindConflict, "user with this email already exists")
		}
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), u.Role, tokenTTL)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to generate token", err)
	}

	return u, token, nil
}

func (as *AuthService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := as.userRepository.FetchByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to fetch user", err)
	}
	// Same failure for unknown email and wrong password.
	if u == nil || u.PasswordHash == nil {
		return nil, "", apperr.New(apperr.KindUnauthenticated, "invalid credentials")
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.New(apperr.KindUnauthenticated, "invalid credentials")
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), u.Role, tokenTTL)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to generate token", err)
	}

	return u, token, nil
}
