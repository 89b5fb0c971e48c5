package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"safechain-api/internal/domain/user"
	"safechain-api/internal/infrastructure/db/postgres"
)

var ErrEmailAlreadyExists = errors.New("user with this email already exists")

type Repository struct {
	db postgres.Beginner
}

func NewRepository(db postgres.Beginner) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchAll(ctx context.Context) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)

		if err = rows.Scan(
			&u.ID,
			&u.UUID,
			&u.Email,
			&u.FullName,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
		); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) FetchByUUID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByUUID, uuid.String()).Scan(
		&u.ID,
		&u.UUID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) FetchByEmail(ctx context.Context, email string) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByEmail, email).Scan(
		&u.ID,
		&u.UUID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) Create(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	var hash string
	if req.PasswordHash != nil {
		hash = *req.PasswordHash
	}

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Email, req.FullName, hash, req.Role,
	).Scan(
		&u.ID,
		&u.UUID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) Delete(ctx context.Context, id user.ID) ([]string, error) {
	var keys []string

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, DeleteSharesGrantedToUser, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, DeleteSharesOnUserFiles, id); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, DeleteUserFilesReturningKeys, id)
		if err != nil {
			return err
		}
		for rows.Next() {
			var key string
			if err = rows.Scan(&key); err != nil {
				rows.Close()
				return err
			}
			keys = append(keys, key)
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, DeleteUserByID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}
