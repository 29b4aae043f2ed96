package ports

import (
	"context"

	"project-manager-api/internal/domain/ingest"
	"project-manager-api/internal/domain/stored_file"
	"project-manager-api/internal/domain/user"
)

type FileService interface {
	Ingest(ctx context.Context, credential string, extract ingest.Extractor) (*ingest.Result, error)
	FindFiles(ctx context.Context, userUUID user.UUID, filter stored_file.Filter) (stored_file.StoredFiles, error)
}
