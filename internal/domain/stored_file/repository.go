package stored_file

import (
	"context"

	"project-manager-api/internal/domain/user"
)

type Repository interface {
	CreateStoredFile(ctx context.Context, userID user.ID, req *StoredFile) (*StoredFile, error)
	FetchStoredFiles(ctx context.Context, userID user.ID, filter Filter) (StoredFiles, error)
}
