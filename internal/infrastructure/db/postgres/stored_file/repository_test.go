package stored_file

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "project-manager-api/internal/domain/stored_file"
)

var fileColumns = []string{
	"id", "uuid", "owner_uuid", "project_id", "task_id", "file_name", "category", "mime_type",
	"size_bytes", "checksum", "bucket", "storage_key", "address", "created_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepository_CreateStoredFile(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	owner := uuid.New()
	project := uuid.New()
	fileID := uuid.New()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	req := &domain.StoredFile{
		OwnerID:    owner,
		ProjectID:  &project,
		FileName:   "roadmap.pdf",
		Category:   domain.CategoryDocument,
		MimeType:   "application/pdf",
		SizeBytes:  1024,
		Checksum:   "deadbeef",
		Bucket:     "uploads",
		StorageKey: "documents/1-abc.pdf",
		Address:    "https://files.example.com/documents/1-abc.pdf",
	}

	mock.ExpectQuery(regexp.QuoteMeta(InsertStoredFile)).
		WithArgs(
			uint64(9), req.ProjectID, req.TaskID,
			"roadmap.pdf", "DOCUMENT", "application/pdf", uint64(1024), "deadbeef",
			"uploads", "documents/1-abc.pdf", "https://files.example.com/documents/1-abc.pdf",
		).
		WillReturnRows(mock.NewRows(fileColumns).AddRow(
			uint64(100), fileID, owner, &project, (*uuid.UUID)(nil),
			"roadmap.pdf", "DOCUMENT", "application/pdf", uint64(1024), "deadbeef",
			"uploads", "documents/1-abc.pdf", "https://files.example.com/documents/1-abc.pdf", now,
		))

	f, err := repo.CreateStoredFile(context.Background(), 9, req)
	require.NoError(t, err)
	assert.Equal(t, fileID, f.UUID)
	assert.Equal(t, owner, f.OwnerID)
	require.NotNil(t, f.ProjectID)
	assert.Equal(t, project, *f.ProjectID)
	assert.Nil(t, f.TaskID)
	assert.Equal(t, domain.CategoryDocument, f.Category)
	assert.Equal(t, uint64(1024), f.SizeBytes)
	assert.Equal(t, now, f.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateStoredFile_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	dbErr := errors.New("duplicate key value violates unique constraint")
	mock.ExpectQuery(regexp.QuoteMeta(InsertStoredFile)).
		WithArgs(
			uint64(9), (*uuid.UUID)(nil), (*uuid.UUID)(nil),
			"", "OTHER", "", uint64(0), "",
			"", "", "",
		).
		WillReturnError(dbErr)

	f, err := repo.CreateStoredFile(context.Background(), 9, &domain.StoredFile{Category: domain.CategoryOther})
	require.ErrorIs(t, err, dbErr)
	assert.Nil(t, f)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchStoredFiles(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	owner := uuid.New()
	task := uuid.New()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	filter := domain.Filter{TaskID: &task, Page: 2}

	mock.ExpectQuery(regexp.QuoteMeta(SelectStoredFiles)).
		WithArgs(uint64(9), filter.ProjectID, filter.TaskID, 2).
		WillReturnRows(mock.NewRows(fileColumns).
			AddRow(uint64(2), uuid.New(), owner, (*uuid.UUID)(nil), &task,
				"b.png", "IMAGE", "image/png", uint64(10), "c2", "uploads", "images/2-b.png", "https://x/images/2-b.png", now).
			AddRow(uint64(1), uuid.New(), owner, (*uuid.UUID)(nil), &task,
				"a.zip", "ARCHIVE", "application/zip", uint64(20), "c1", "uploads", "documents/1-a.zip", "https://x/documents/1-a.zip", now))

	fls, err := repo.FetchStoredFiles(context.Background(), 9, filter)
	require.NoError(t, err)
	require.Len(t, fls, 2)
	assert.Equal(t, "b.png", fls[0].FileName)
	assert.Equal(t, domain.CategoryImage, fls[0].Category)
	assert.Equal(t, domain.CategoryArchive, fls[1].Category)
	assert.Nil(t, fls[1].ProjectID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchStoredFiles_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(SelectStoredFiles)).
		WithArgs(uint64(9), (*uuid.UUID)(nil), (*uuid.UUID)(nil), 1).
		WillReturnRows(mock.NewRows(fileColumns))

	fls, err := repo.FetchStoredFiles(context.Background(), 9, domain.Filter{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, fls)
	require.NoError(t, mock.ExpectationsWereMet())
}
