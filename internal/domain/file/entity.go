package file

import (
	"time"

	"github.com/google/uuid"

	"safechain-api/internal/domain/user"
)

type (
	ID   uint64
	UUID = uuid.UUID

	// File is immutable once uploaded; only its shares are mutated
	// afterwards. StorageKey is an opaque locator into the blob store,
	// never derived from the client-supplied name.
	File struct {
		ID          ID
		UUID        UUID
		OwnerID     user.ID
		OwnerName   string
		FileName    string
		ContentType string
		SizeBytes   uint64
		StorageKey  string
		UploadedAt  time.Time
	}
	Files []*File

	// Share grants one user read access to one file. At most one active
	// share exists per (file, user) pair.
	Share struct {
		TargetUUID     user.UUID
		TargetEmail    string
		TargetFullName string
		GrantedByEmail string
		SharedAt       time.Time
	}
	Shares []*Share
)

func (f *File) OwnedBy(u *user.User) bool { return u != nil && f.OwnerID == u.ID }
