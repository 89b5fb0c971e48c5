package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		UUID        uuid.UUID `json:"uuid"`
		FileName    string    `json:"file_name"`
		ContentType string    `json:"content_type"`
		SizeBytes   uint64    `json:"size_bytes"`
		OwnerName   string    `json:"owner_name"`
		UploadedAt  time.Time `json:"uploaded_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}

	Share struct {
		TargetUUID     uuid.UUID `json:"target_uuid"`
		TargetEmail    string    `json:"target_email"`
		TargetFullName string    `json:"target_full_name"`
		GrantedByEmail string    `json:"granted_by_email"`
		SharedAt       time.Time `json:"shared_at"`
	}
	Shares             []Share
	SharesResponseData struct {
		Data Shares `json:"data"`
	}
)
