package activity

import (
	"time"
)

type (
	Entry struct {
		ID        uint64
		EventType string
		ActorID   uint64
		ActorName *string
		FileID    *uint64
		FileName  *string
		Details   string
		CreatedAt time.Time
	}
	Entries []*Entry
)
