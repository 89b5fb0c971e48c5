package activity

import (
	"time"

	"safechain-api/internal/domain/user"
)

type EventType string

const (
	EventUpload   EventType = "UPLOAD"
	EventDownload EventType = "DOWNLOAD"
	EventShare    EventType = "SHARE"
	EventDelete   EventType = "DELETE"
)

type (
	// Entry is an immutable audit record. FileID is nil once the file is
	// gone (DELETE entries keep the filename inside Details instead).
	Entry struct {
		ID        uint64
		EventType EventType
		ActorID   user.ID
		ActorName string
		FileID    *uint64
		FileName  *string
		Details   string
		CreatedAt time.Time
	}
	Entries []*Entry
)
