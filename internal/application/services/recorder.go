package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"project-manager-api/internal/application/ports"
	"project-manager-api/internal/domain/activity"
	"project-manager-api/internal/domain/ingest"
	domain "project-manager-api/internal/domain/stored_file"
	"project-manager-api/internal/domain/user"
)

// FileMeta describes bytes that are already durable in the object store.
type FileMeta struct {
	OwnerID   user.UUID
	ProjectID *uuid.UUID
	TaskID    *uuid.UUID

	FileName  string
	Category  domain.Category
	MimeType  string
	SizeBytes uint64
	Checksum  string

	Bucket     string
	StorageKey string
	Address    string
}

type MetadataRecorder struct {
	storedFileRepository domain.Repository
	userRepository       user.Repository
	activityRepository   activity.Repository
	publisher            ports.EventPublisher
	logger               *zap.Logger
	mCounter             *prometheus.CounterVec
	now                  func() time.Time
}

// NewMetadataRecorder accepts a nil publisher when no broker is configured.
func NewMetadataRecorder(
	storedFileRepository domain.Repository,
	userRepository user.Repository,
	activityRepository activity.Repository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *MetadataRecorder {
	return &MetadataRecorder{
		storedFileRepository: storedFileRepository,
		userRepository:       userRepository,
		activityRepository:   activityRepository,
		publisher:            publisher,
		logger:               logger,
		mCounter:             mCounter,
		now:                  time.Now,
	}
}

// Record persists the file row. Only that write decides the returned error;
// the avatar link becomes a warning and the activity trail is logged on failure.
func (mr *MetadataRecorder) Record(ctx context.Context, meta FileMeta) (*domain.StoredFile, []ingest.Warning, error) {
	ownerID, err := mr.userRepository.FetchInternalID(ctx, meta.OwnerID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve owner %s: %w", meta.OwnerID, err)
	}

	out, err := mr.storedFileRepository.CreateStoredFile(ctx, ownerID, &domain.StoredFile{
		OwnerID:    meta.OwnerID,
		ProjectID:  meta.ProjectID,
		TaskID:     meta.TaskID,
		FileName:   meta.FileName,
		Category:   meta.Category,
		MimeType:   meta.MimeType,
		SizeBytes:  meta.SizeBytes,
		Checksum:   meta.Checksum,
		Bucket:     meta.Bucket,
		StorageKey: meta.StorageKey,
		Address:    meta.Address,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create stored file: %w", err)
	}

	var warnings []ingest.Warning
	if out.Category == domain.CategoryAvatar {
		if err = mr.userRepository.UpdateAvatar(ctx, ownerID, out.Address); err != nil {
			mr.logger.Warn("avatar link failed",
				zap.Error(err),
				zap.Stringer("user_uuid", meta.OwnerID),
				zap.String("storage_key", out.StorageKey),
			)
			mr.inc("avatar_link_failed_total")
			warnings = append(warnings, ingest.Warning{
				Code:    ingest.WarningAvatarLinkFailed,
				Message: "file stored but the profile avatar was not updated",
			})
		}
	}

	mr.appendActivity(ctx, out)

	return out, warnings, nil
}

func (mr *MetadataRecorder) appendActivity(ctx context.Context, f *domain.StoredFile) {
	rec := activity.Record{
		UUID:        uuid.New(),
		Type:        activity.TypeFileUploaded,
		Description: fmt.Sprintf("Uploaded file %q", f.FileName),
		UserID:      f.OwnerID,
		ProjectID:   f.ProjectID,
		TaskID:      f.TaskID,
		Metadata: map[string]any{
			"file_id":     f.UUID.String(),
			"filename":    f.FileName,
			"category":    f.Category.String(),
			"size":        f.SizeBytes,
			"storage_key": f.StorageKey,
		},
		CreatedAt: mr.now().UTC(),
	}

	if err := mr.activityRepository.AppendActivity(ctx, rec); err != nil {
		// alert
		mr.logger.Error("activity append failed",
			zap.Error(err),
			zap.Stringer("file_uuid", f.UUID),
			zap.Stringer("user_uuid", f.OwnerID),
		)
		mr.inc("activity_append_failed_total")
		return
	}

	if mr.publisher != nil && !mr.publisher.Publish(rec) {
		mr.logger.Warn("activity event dropped, publisher queue is full", zap.Stringer("activity_uuid", rec.UUID))
	}
}

func (mr *MetadataRecorder) inc(label string) {
	if mr.mCounter != nil {
		mr.mCounter.WithLabelValues(label).Inc()
	}
}
