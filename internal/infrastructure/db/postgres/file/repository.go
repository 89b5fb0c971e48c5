package file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainActivity "safechain-api/internal/domain/activity"
	"safechain-api/internal/domain/file"
	"safechain-api/internal/domain/user"
	"safechain-api/internal/infrastructure/db/postgres"
	"safechain-api/internal/infrastructure/db/postgres/activity"
)

var (
	ErrAlreadyShared = errors.New("file already shared with this user")
	ErrShareNotFound = errors.New("file is not shared with this user")
	ErrFileNotFound  = errors.New("file not found")
	// ErrFileGone means the file row vanished between the caller's read
	// and the share insert (a concurrent delete won the race).
	ErrFileGone = errors.New("file no longer exists")
)

type Repository struct {
	db postgres.Beginner
}

func NewRepository(db postgres.Beginner) file.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchByUUID(ctx context.Context, uuid file.UUID) (*file.File, error) {
	f := new(File)
	err := r.db.QueryRow(ctx, SelectFileByUUID, uuid.String()).Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerID,
		&f.OwnerName,
		&f.FileName,
		&f.ContentType,
		&f.SizeBytes,
		&f.StorageKey,
		&f.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) FetchOwnedBy(ctx context.Context, ownerID user.ID) (file.Files, error) {
	return r.fetch(ctx, SelectFilesByOwner, uint64(ownerID))
}

func (r *Repository) FetchSharedWith(ctx context.Context, userID user.ID) (file.Files, error) {
	return r.fetch(ctx, SelectFilesSharedWith, uint64(userID))
}

func (r *Repository) fetch(ctx context.Context, query string, args ...any) (file.Files, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,
			&f.OwnerID,
			&f.OwnerName,
			&f.FileName,
			&f.ContentType,
			&f.SizeBytes,
			&f.StorageKey,
			&f.UploadedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

// Create inserts the metadata row and its UPLOAD audit entry in one
// transaction: losing the audit entry aborts the upload.
func (r *Repository) Create(ctx context.Context, f *file.File, entry *domainActivity.Entry) (*file.File, error) {
	out := *f

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var id uint64
		if err := tx.QueryRow(
			ctx,
			InsertFile,
			uint64(f.OwnerID), f.FileName, f.ContentType, f.SizeBytes, f.StorageKey,
		).Scan(&id, &out.UUID, &out.UploadedAt); err != nil {
			return err
		}
		out.ID = file.ID(id)

		entry.FileID = &id
		_, err := activity.Insert(ctx, tx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// CreateShare inserts the share and its SHARE audit entry in one
// transaction. The unique index on (file_id, shared_with_user_id)
// rejects duplicates; the FK to files rejects shares on a file a
// concurrent delete already removed.
func (r *Repository) CreateShare(ctx context.Context, fileID file.ID, targetID, grantedBy user.ID, entry *domainActivity.Entry) error {
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, InsertShare, uint64(fileID), uint64(targetID), uint64(grantedBy)); err != nil {
			return err
		}

		_, err := activity.Insert(ctx, tx, entry)
		return err
	})
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return ErrAlreadyShared
		}
		if postgres.IsPgForeignKeyViolation(err) {
			return ErrFileGone
		}
		return err
	}

	return nil
}

func (r *Repository) DeleteShare(ctx context.Context, fileID file.ID, targetID user.ID, entry *domainActivity.Entry) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, DeleteShareByFileAndTarget, uint64(fileID), uint64(targetID))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrShareNotFound
		}

		_, err = activity.Insert(ctx, tx, entry)
		return err
	})
}

func (r *Repository) FetchShares(ctx context.Context, fileID file.ID) (file.Shares, error) {
	rows, err := r.db.Query(ctx, SelectSharesByFile, uint64(fileID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ss Shares
	for rows.Next() {
		s := new(Share)

		if err = rows.Scan(
			&s.ID,
			&s.TargetUUID,
			&s.TargetEmail,
			&s.TargetFullName,
			&s.GrantedByEmail,
			&s.SharedAt,
		); err != nil {
			return nil, err
		}

		ss = append(ss, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sharesFromDBModels(&ss), nil
}

func (r *Repository) HasShare(ctx context.Context, fileID file.ID, userID user.ID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectShareExists, uint64(fileID), uint64(userID)).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// Delete removes every share and then the file row in one transaction,
// so no share can outlive its file.
func (r *Repository) Delete(ctx context.Context, fileID file.ID) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, DeleteSharesByFile, uint64(fileID)); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, DeleteFileByID, uint64(fileID))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrFileNotFound
		}

		return nil
	})
}
