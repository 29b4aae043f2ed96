package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "project-manager-api/internal/domain/activity"
)

type FakeCollection struct {
	InsertOneFunc func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
}

func (f *FakeCollection) InsertOne(ctx context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	return f.InsertOneFunc(ctx, document)
}

func TestRepository_AppendActivity(t *testing.T) {
	task := uuid.New()
	rec := domain.Record{
		UUID:        uuid.New(),
		Type:        domain.TypeFileUploaded,
		Description: `Uploaded file "a.png"`,
		UserID:      uuid.New(),
		TaskID:      &task,
		Metadata:    map[string]any{"filename": "a.png"},
		CreatedAt:   time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	var got *Activity
	repo := &Repository{collection: &FakeCollection{InsertOneFunc: func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
		got = document.(*Activity)
		return &mongo.InsertOneResult{}, nil
	}}}

	require.NoError(t, repo.AppendActivity(context.Background(), rec))
	require.NotNil(t, got)
	assert.Equal(t, rec.UUID.String(), got.UUID)
	assert.Equal(t, "FILE_UPLOADED", got.Type)
	assert.Equal(t, rec.UserID.String(), got.UserID)
	assert.Nil(t, got.ProjectID)
	require.NotNil(t, got.TaskID)
	assert.Equal(t, task.String(), *got.TaskID)
	assert.Equal(t, rec.Metadata, got.Metadata)
	assert.True(t, got.ID.IsZero(), "_id is assigned by the server")
}

func TestRepository_AppendActivity_Error(t *testing.T) {
	repo := &Repository{collection: &FakeCollection{InsertOneFunc: func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
		return nil, errors.New("server selection timeout")
	}}}

	require.Error(t, repo.AppendActivity(context.Background(), domain.Record{UUID: uuid.New()}))
}
