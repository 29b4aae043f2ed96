package stored_file

import (
	domain "project-manager-api/internal/domain/stored_file"
)

func fromDBModel(model *StoredFile) *domain.StoredFile {
	var f = &domain.StoredFile{
		UUID:      model.UUID,
		OwnerID:   model.OwnerUUID,
		ProjectID: model.ProjectID,
		TaskID:    model.TaskID,

		FileName:  model.FileName,
		Category:  domain.Category(model.Category),
		MimeType:  model.MimeType,
		SizeBytes: model.SizeBytes,
		Checksum:  model.Checksum,

		Bucket:     model.Bucket,
		StorageKey: model.StorageKey,
		Address:    model.Address,

		CreatedAt: model.CreatedAt,
	}

	return f
}

func fromDBModels(models *StoredFiles) domain.StoredFiles {
	fls := make(domain.StoredFiles, len(*models))
	for idx, f := range *models {
		fls[idx] = fromDBModel(f)
	}

	return fls
}
