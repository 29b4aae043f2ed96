package activity

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const TypeFileUploaded Type = "FILE_UPLOADED"

// Record is an append-only audit entry. Metadata is free-form and stored as-is.
type Record struct {
	UUID        uuid.UUID      `json:"id"`
	Type        Type           `json:"type"`
	Description string         `json:"description"`
	UserID      uuid.UUID      `json:"user_id"`
	ProjectID   *uuid.UUID     `json:"project_id,omitempty"`
	TaskID      *uuid.UUID     `json:"task_id,omitempty"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}
