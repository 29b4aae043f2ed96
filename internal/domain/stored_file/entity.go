package stored_file

import (
	"time"

	"github.com/google/uuid"
)

type (
	StoredFile struct {
		UUID      uuid.UUID
		OwnerID   uuid.UUID
		ProjectID *uuid.UUID
		TaskID    *uuid.UUID

		FileName  string
		Category  Category
		MimeType  string
		SizeBytes uint64
		Checksum  string

		Bucket     string
		StorageKey string
		Address    string

		CreatedAt time.Time
	}
	StoredFiles []*StoredFile

	Filter struct {
		ProjectID *uuid.UUID
		TaskID    *uuid.UUID
		Page      int
	}
)
