package activity

import (
	"time"
)

type (
	Entry struct {
		ID        uint64    `json:"id"`
		EventType string    `json:"event_type"`
		ActorName string    `json:"actor_name"`
		FileID    *uint64   `json:"file_id"`
		FileName  *string   `json:"file_name"`
		Details   string    `json:"details"`
		CreatedAt time.Time `json:"created_at"`
	}
	Entries      []Entry
	ResponseData struct {
		Data Entries `json:"data"`
	}
)
