package file

import (
	domain "safechain-api/internal/domain/file"
	"safechain-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		ID:          domain.ID(model.ID),
		UUID:        model.UUID,
		OwnerID:     user.ID(model.OwnerID),
		OwnerName:   model.OwnerName,
		FileName:    model.FileName,
		ContentType: model.ContentType,
		SizeBytes:   model.SizeBytes,
		StorageKey:  model.StorageKey,
		UploadedAt:  model.UploadedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}

func shareFromDBModel(model *Share) *domain.Share {
	var s = &domain.Share{
		TargetUUID:     model.TargetUUID,
		TargetEmail:    model.TargetEmail,
		TargetFullName: model.TargetFullName,
		GrantedByEmail: model.GrantedByEmail,
		SharedAt:       model.SharedAt,
	}

	return s
}

func sharesFromDBModels(models *Shares) domain.Shares {
	ss := make(domain.Shares, len(*models))
	for idx, s := range *models {
		ss[idx] = shareFromDBModel(s)
	}

	return ss
}
