package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"safechain-api/internal/apperr"
	"safechain-api/internal/application/ports"
	domainActivity "safechain-api/internal/domain/activity"
	domain "safechain-api/internal/domain/file"
	"safechain-api/internal/domain/user"
	fileDB "safechain-api/internal/infrastructure/db/postgres/file"
	"safechain-api/internal/infrastructure/mq"
	activityDTO "safechain-api/internal/interface/api/rest/dto/activity"
)

type FileService struct {
	logger             *zap.Logger
	blob               ports.BlobStore
	fileRepository     domain.Repository
	userRepository     user.Repository
	activityRepository domainActivity.Repository
	mq                 ports.RabbitMQ
	mCounter           *prometheus.CounterVec
}

func NewFileService(
	logger *zap.Logger,
	blob ports.BlobStore,
	fileRepository domain.Repository,
	userRepository user.Repository,
	activityRepository domainActivity.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		logger:             logger,
		blob:               blob,
		fileRepository:     fileRepository,
		userRepository:     userRepository,
		activityRepository: activityRepository,
		mq:                 mq,
		mCounter:           mCounter,
	}
}

// Upload writes the blob first, then the metadata row together with its
// UPLOAD audit entry in one transaction. If the metadata write fails the
// orphaned blob is leaked deliberately and reported at warn level.
func (fs *FileService) Upload(ctx context.Context, principal user.UUID, in *multipart.FileHeader) (*domain.File, error) {
	actor, err := resolveActor(ctx, fs.userRepository, principal)
	if err != nil {
		return nil, err
	}

	f := &domain.File{
		OwnerID:     actor.ID,
		OwnerName:   actor.FullName,
		FileName:    sanitizeFileName(in.Filename),
		ContentType: in.Header.Get("Content-Type"),
		SizeBytes:   uint64(in.Size),
		StorageKey:  genStorageKey(),
	}

	src, err := in.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "failed to read uploaded file", err)
	}
	defer src.Close()

	if _, err = fs.blob.Save(ctx, f.StorageKey, src); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageWrite, "failed to store file", err)
	}

	entry := &domainActivity.Entry{
		EventType: domainActivity.EventUpload,
		ActorID:   actor.ID,
		ActorName: actor.FullName,
		Details:   "Uploaded file: " + f.FileName,
	}
	out, err := fs.fileRepository.Create(ctx, f, entry)
	if err != nil {
		// The written blob is leaked rather than risking the bytes.
		fs.logger.Warn("orphaned blob after metadata insert failure",
			zap.String("storage_key", f.StorageKey), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save file metadata", err)
	}

	fs.emit(actor, entry)
	fs.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return out, nil
}

func (fs *FileService) ListOwned(ctx context.Context, principal user.UUID) (domain.Files, error) {
	actor, err := resolveActor(ctx, fs.userRepository, principal)
	if err != nil {
		return nil, err
	}

	return fs.fileRepository.FetchOwnedBy(ctx, actor.ID)
}

func (fs *FileService) ListSharedWithMe(ctx context.Context, principal user.UUID) (domain.Files, error) {
	actor, err := resolveActor(ctx, fs.userRepository, principal)
	if err != nil {
		return nil, err
	}

	return fs.fileRepository.FetchSharedWith(ctx, actor.ID)
}

func (fs *FileService) Share(ctx context.Context, principal user.UUID, fileUUID domain.UUID, targetEmail string) (string, error) {
	actor, f, err := fs.resolveFile(ctx, principal, fileUUID)
	if err != nil {
		return "", err
	}
	if !CanAccess(actor, f, OpShare, false) {
		return "", apperr.New(apperr.KindForbidden, "you can only share files you own")
	}

	target, err := fs.userRepository.FetchByEmail(ctx, normalizeEmail(targetEmail))
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to fetch user", err)
	}
	if target == nil {
		return "", apperr.New(apperr.KindNotFound, "user not found")
	}
	if target.ID == f.OwnerID {
		return "", apperr.New(apperr.KindConflict, "cannot share a file with its owner")
	}

	fileID := uint64(f.ID)
	entry := &domainActivity.Entry{
		EventType: domainActivity.EventShare,
		ActorID:   actor.ID,
		ActorName: actor.FullName,
		FileID:    &fileID,
		Details:   "Shared file with " + target.Email,
	}
	if err = fs.fileRepository.CreateShare(ctx, f.ID, target.ID, actor.ID, entry); err != nil {
		if errors.Is(err, fileDB.ErrAlreadyShared) {
			return "", apperr.New(apperr.KindConflict, "file already shared with this user")
		}
		if errors.Is(err, fileDB.ErrFileGone) {
			return "", apperr.New(apperr.KindNotFound, "file not found")
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to share file", err)
	}

	fs.emit(actor, entry)
	fs.mCounter.WithLabelValues("files_shared_total").Inc()

	return "File shared successfully with " + target.FullName, nil
}

func (fs *FileService) Unshare(ctx context.Context, principal user.UUID, fileUUID domain.UUID, targetEmail string) (string, error) {
	actor, f, err := fs.resolveFile(ctx, principal, fileUUID)
	if err != nil {
		return "", err
	}
	if !CanAccess(actor, f, OpUnshare, false) {
		return "", apperr.New(apperr.KindForbidden, "you can only modify shares for files you own")
	}

	target, err := fs.userRepository.FetchByEmail(ctx, normalizeEmail(targetEmail))
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to fetch user", err)
	}
	if target == nil {
		return "", apperr.New(apperr.KindNotFound, "user not found")
	}

	fileID := uint64(f.ID)
	entry := &domainActivity.Entry{
		EventType: domainActivity.EventShare,
		ActorID:   actor.ID,
		ActorName: actor.FullName,
		FileID:    &fileID,
		Details:   "Revoked access for " + target.Email,
	}
	if err = fs.fileRepository.DeleteShare(ctx, f.ID, target.ID, entry); err != nil {
		if errors.Is(err, fileDB.ErrShareNotFound) {
			return "", apperr.New(apperr.KindNotFound, "file is not shared with this user")
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to revoke share", err)
	}

	fs.emit(actor, entry)
	fs.mCounter.WithLabelValues("files_unshared_total").Inc()

	return "Access revoked for " + target.FullName, nil
}

func (fs *FileService) ListShares(ctx context.Context, principal user.UUID, fileUUID domain.UUID) (domain.Shares, error) {
	actor, f, err := fs.resolveFile(ctx, principal, fileUUID)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor, f, OpListShares, false) {
		return nil, apperr.New(apperr.KindForbidden, "you can only view shares for files you own")
	}

	return fs.fileRepository.FetchShares(ctx, f.ID)
}

// Download authorizes the read and resolves the blob path. The DOWNLOAD
// audit entry is best-effort: losing it must never block the transfer.
func (fs *FileService) Download(ctx context.Context, principal user.UUID, fileUUID domain.UUID) (*domain.File, string, error) {
	actor, f, err := fs.resolveFile(ctx, principal, fileUUID)
	if err != nil {
		return nil, "", err
	}

	hasShare := false
	if !f.OwnedBy(actor) {
		if hasShare, err = fs.fileRepository.HasShare(ctx, f.ID, actor.ID); err != nil {
			return nil, "", apperr.Wrap(apperr.KindInternal, "failed to check file access", err)
		}
	}
	if !CanAccess(actor, f, OpRead, hasShare) {
		return nil, "", apperr.New(apperr.KindForbidden, "you don't have access to this file")
	}

	path, err := fs.blob.Path(f.StorageKey)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindStorageRead, "failed to locate file content", err)
	}

	fileID := uint64(f.ID)
	entry := &domainActivity.Entry{
		EventType: domainActivity.EventDownload,
		ActorID:   actor.ID,
		ActorName: actor.FullName,
		FileID:    &fileID,
		Details:   "Downloaded file: " + f.FileName,
	}
	if _, err = fs.activityRepository.Append(ctx, entry); err != nil {
		fs.logger.Warn("failed to record download activity",
			zap.Stringer("file_uuid", f.UUID), zap.Error(err))
	} else {
		fs.emit(actor, entry)
	}

	fs.mCounter.WithLabelValues("files_downloaded_total").Inc()

	return f, path, nil
}

// Delete removes shares and metadata in one transaction, then the blob
// best-effort. A blob that refuses to die is logged and leaked; the
// caller still sees success.
func (fs *FileService) Delete(ctx context.Context, principal user.UUID, fileUUID domain.UUID) (string, error) {
	actor, f, err := fs.resolveFile(ctx, principal, fileUUID)
	if err != nil {
		return "", err
	}
	if !CanAccess(actor, f, OpDelete, false) {
		return "", apperr.New(apperr.KindForbidden, "you don't have permission to delete this file")
	}

	if err = fs.fileRepository.Delete(ctx, f.ID); err != nil {
		if errors.Is(err, fileDB.ErrFileNotFound) {
			return "", apperr.New(apperr.KindNotFound, "file not found")
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to delete file", err)
	}

	if err = fs.blob.Remove(f.StorageKey); err != nil {
		fs.logger.Warn("failed to remove blob after delete",
			zap.String("storage_key", f.StorageKey), zap.Error(err))
	}

	entry := &domainActivity.Entry{
		EventType: domainActivity.EventDelete,
		ActorID:   actor.ID,
		ActorName: actor.FullName,
		Details:   fmt.Sprintf("Deleted file id=%s, name=%s", f.UUID, f.FileName),
	}
	if _, err = fs.activityRepository.Append(ctx, entry); err != nil {
		fs.logger.Warn("failed to record delete activity",
			zap.Stringer("file_uuid", f.UUID), zap.Error(err))
	} else {
		fs.emit(actor, entry)
	}

	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return "File deleted", nil
}

func (fs *FileService) resolveFile(ctx context.Context, principal user.UUID, fileUUID domain.UUID) (*user.User, *domain.File, error) {
	actor, err := resolveActor(ctx, fs.userRepository, principal)
	if err != nil {
		return nil, nil, err
	}

	f, err := fs.fileRepository.FetchByUUID(ctx, fileUUID)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, "failed to fetch file", err)
	}
	if f == nil {
		return nil, nil, apperr.New(apperr.KindNotFound, "file not found")
	}

	return actor, f, nil
}

func (fs *FileService) emit(actor *user.User, entry *domainActivity.Entry) {
	fs.mq.GetInputChan() <- mq.Event{
		Id:        uuid.New(),
		TS:        time.Now(),
		EventType: string(entry.EventType),
		ActorID:   actor.UUID.String(),
		Payload:   activityDTO.ToResponseEntry(*entry),
	}
}

// genStorageKey returns an opaque 128-bit key, never derived from
// client input.
func genStorageKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
