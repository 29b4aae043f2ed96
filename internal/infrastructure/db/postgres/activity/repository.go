package activity

import (
	"context"
	"fmt"

	"project-manager-api/internal/domain/activity"
	"project-manager-api/internal/domain/user"
	"project-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) activity.Repository {
	return &Repository{db: db}
}

func (r *Repository) AppendActivity(ctx context.Context, rec activity.Record) error {
	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	tag, err := r.db.Exec(ctx, InsertActivity,
		rec.UUID, string(rec.Type), rec.Description, rec.UserID.String(),
		rec.ProjectID, rec.TaskID, metadata, rec.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity owner %s: %w", rec.UserID, user.ErrNotFound)
	}

	return nil
}
