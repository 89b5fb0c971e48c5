package activity

import (
	"safechain-api/internal/domain/activity"
)

func ToResponseEntry(eDomain activity.Entry) Entry {
	var e = Entry{
		ID:        eDomain.ID,
		EventType: string(eDomain.EventType),
		ActorName: eDomain.ActorName,
		FileID:    eDomain.FileID,
		FileName:  eDomain.FileName,
		Details:   eDomain.Details,
		CreatedAt: eDomain.CreatedAt,
	}

	return e
}

func ToResponseEntries(eDomain activity.Entries) Entries {
	es := make(Entries, len(eDomain))
	for idx, e := range eDomain {
		es[idx] = ToResponseEntry(*e)
	}

	return es
}
