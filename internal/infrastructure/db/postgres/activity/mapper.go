package activity

import (
	domain "safechain-api/internal/domain/activity"
	"safechain-api/internal/domain/user"
)

func fromDBModel(model *Entry) *domain.Entry {
	e := &domain.Entry{
		ID:        model.ID,
		EventType: domain.EventType(model.EventType),
		ActorID:   user.ID(model.ActorID),
		FileID:    model.FileID,
		FileName:  model.FileName,
		Details:   model.Details,
		CreatedAt: model.CreatedAt,
	}
	if model.ActorName != nil {
		e.ActorName = *model.ActorName
	}

	return e
}

func fromDBModels(models *Entries) domain.Entries {
	es := make(domain.Entries, len(*models))
	for idx, e := range *models {
		es[idx] = fromDBModel(e)
	}

	return es
}
