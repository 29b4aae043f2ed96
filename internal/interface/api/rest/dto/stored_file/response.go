package stored_file

import (
	"time"

	"github.com/google/uuid"
)

type (
	StoredFile struct {
		UUID       uuid.UUID  `json:"uuid"`
		OwnerID    uuid.UUID  `json:"owner_id"`
		ProjectID  *uuid.UUID `json:"project_id,omitempty"`
		TaskID     *uuid.UUID `json:"task_id,omitempty"`
		FileName   string     `json:"file_name"`
		Category   string     `json:"category"`
		MimeType   string     `json:"mime_type"`
		SizeBytes  uint64     `json:"size_bytes"`
		Checksum   string     `json:"checksum"`
		StorageKey string     `json:"storage_key"`
		URL        string     `json:"url"`
		CreatedAt  time.Time  `json:"created_at"`
	}
	StoredFiles []StoredFile

	Warning struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	UploadResponse struct {
		Data     StoredFile `json:"data"`
		Warnings []Warning  `json:"warnings"`
	}
	ResponseData struct {
		Data StoredFiles `json:"data"`
	}
)
