package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID          uint64
		UUID        uuid.UUID
		OwnerID     uint64
		OwnerName   string
		FileName    string
		ContentType string
		SizeBytes   uint64
		StorageKey  string
		UploadedAt  time.Time
	}
	Files []*File

	Share struct {
		ID             uint64
		TargetUUID     uuid.UUID
		TargetEmail    string
		TargetFullName string
		GrantedByEmail string
		SharedAt       time.Time
	}
	Shares []*Share
)
