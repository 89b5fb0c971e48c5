package ports

import (
	"context"
	"mime/multipart"

	"safechain-api/internal/domain/file"
	"safechain-api/internal/domain/user"
)

// FileService takes the resolved principal explicitly on every call so
// the core stays testable without a request context.
type FileService interface {
	Upload(ctx context.Context, principal user.UUID, in *multipart.FileHeader) (*file.File, error)
	ListOwned(ctx context.Context, principal user.UUID) (file.Files, error)
	ListSharedWithMe(ctx context.Context, principal user.UUID) (file.Files, error)
	Share(ctx context.Context, principal user.UUID, fileUUID file.UUID, targetEmail string) (string, error)
	Unshare(ctx context.Context, principal user.UUID, fileUUID file.UUID, targetEmail string) (string, error)
	ListShares(ctx context.Context, principal user.UUID, fileUUID file.UUID) (file.Shares, error)
	// Download returns the file metadata and the blob's on-disk path
	// after the READ access check passes.
	Download(ctx context.Context, principal user.UUID, fileUUID file.UUID) (*file.File, string, error)
	Delete(ctx context.Context, principal user.UUID, fileUUID file.UUID) (string, error)
}
