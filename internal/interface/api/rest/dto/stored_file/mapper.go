package stored_file

import (
	"project-manager-api/internal/domain/ingest"
	domain "project-manager-api/internal/domain/stored_file"
)

func ToResponseStoredFile(fDomain domain.StoredFile) StoredFile {
	return StoredFile{
		UUID:       fDomain.UUID,
		OwnerID:    fDomain.OwnerID,
		ProjectID:  fDomain.ProjectID,
		TaskID:     fDomain.TaskID,
		FileName:   fDomain.FileName,
		Category:   fDomain.Category.String(),
		MimeType:   fDomain.MimeType,
		SizeBytes:  fDomain.SizeBytes,
		Checksum:   fDomain.Checksum,
		StorageKey: fDomain.StorageKey,
		URL:        fDomain.Address,
		CreatedAt:  fDomain.CreatedAt,
	}
}

func ToResponseStoredFiles(fsDomain domain.StoredFiles) StoredFiles {
	fs := make(StoredFiles, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseStoredFile(*f)
	}

	return fs
}

// ToUploadResponse always renders warnings as a list, never null.
func ToUploadResponse(res ingest.Result) UploadResponse {
	ws := make([]Warning, len(res.Warnings))
	for idx, w := range res.Warnings {
		ws[idx] = Warning{Code: w.Code, Message: w.Message}
	}

	return UploadResponse{
		Data:     ToResponseStoredFile(*res.File),
		Warnings: ws,
	}
}
