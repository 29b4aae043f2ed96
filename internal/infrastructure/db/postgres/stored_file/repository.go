package stored_file

import (
	"context"

	"project-manager-api/internal/domain/stored_file"
	"project-manager-api/internal/domain/user"
	"project-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) stored_file.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchStoredFiles(ctx context.Context, userID user.ID, filter stored_file.Filter) (stored_file.StoredFiles, error) {
	rows, err := r.db.Query(ctx, SelectStoredFiles, uint64(userID), filter.ProjectID, filter.TaskID, filter.Page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fls StoredFiles
	for rows.Next() {
		f := new(StoredFile)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,
			&f.OwnerUUID,
			&f.ProjectID,
			&f.TaskID,

			&f.FileName,
			&f.Category,
			&f.MimeType,
			&f.SizeBytes,
			&f.Checksum,

			&f.Bucket,
			&f.StorageKey,
			&f.Address,

			&f.CreatedAt,
		); err != nil {
			return nil, err
		}

		fls = append(fls, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fls), nil
}

func (r *Repository) CreateStoredFile(ctx context.Context, userID user.ID, req *stored_file.StoredFile) (*stored_file.StoredFile, error) {
	f := new(StoredFile)

	err := r.db.QueryRow(
		ctx,
		InsertStoredFile,
		uint64(userID), req.ProjectID, req.TaskID,
		req.FileName, req.Category.String(), req.MimeType, req.SizeBytes, req.Checksum,
		req.Bucket, req.StorageKey, req.Address,
	).Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerUUID,
		&f.ProjectID,
		&f.TaskID,

		&f.FileName,
		&f.Category,
		&f.MimeType,
		&f.SizeBytes,
		&f.Checksum,

		&f.Bucket,
		&f.StorageKey,
		&f.Address,

		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}
