package stored_file

import (
	"time"

	"github.com/google/uuid"
)

type (
	StoredFile struct {
		ID        uint64
		UUID      uuid.UUID
		OwnerUUID uuid.UUID
		ProjectID *uuid.UUID
		TaskID    *uuid.UUID

		FileName  string
		Category  string
		MimeType  string
		SizeBytes uint64
		Checksum  string

		Bucket     string
		StorageKey string
		Address    string

		CreatedAt time.Time
	}
	StoredFiles []*StoredFile
)
