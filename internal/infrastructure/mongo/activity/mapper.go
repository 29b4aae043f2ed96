package activity

import (
	"github.com/google/uuid"

	domain "project-manager-api/internal/domain/activity"
)

func toDocument(rec domain.Record) *Activity {
	return &Activity{
		UUID:        rec.UUID.String(),
		Type:        string(rec.Type),
		Description: rec.Description,
		UserID:      rec.UserID.String(),
		ProjectID:   uuidString(rec.ProjectID),
		TaskID:      uuidString(rec.TaskID),
		Metadata:    rec.Metadata,
		CreatedAt:   rec.CreatedAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
