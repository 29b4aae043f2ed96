package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"project-manager-api/internal/application/ports"
	"project-manager-api/internal/domain/ingest"
	domain "project-manager-api/internal/domain/stored_file"
	"project-manager-api/internal/domain/user"
)

const (
	defaultMimeType            = "application/octet-stream"
	defaultCompensationTimeout = 10 * time.Second
)

type Stage string

const (
	StageAuthenticating Stage = "AUTHENTICATING"
	StageValidating     Stage = "VALIDATING"
	StageClassifying    Stage = "CLASSIFYING"
	StageUploading      Stage = "UPLOADING"
	StagePersisting     Stage = "PERSISTING"
	StageSucceeded      Stage = "SUCCEEDED"
	StageFailed         Stage = "FAILED"
)

// PartitionNames overrides the key prefix per partition; missing entries use the partition value.
type PartitionNames map[domain.Partition]string

func (p PartitionNames) Name(part domain.Partition) string {
	if n, ok := p[part]; ok && n != "" {
		return n
	}
	return part.String()
}

type IngestionConfig struct {
	MaxSizeBytes        int64
	Bucket              string
	Partitions          PartitionNames
	CompensationTimeout time.Duration
}

type IngestionService struct {
	cfg                  IngestionConfig
	verifier             ports.TokenVerifier
	keys                 *KeyGenerator
	store                ports.ObjectStore
	recorder             *MetadataRecorder
	storedFileRepository domain.Repository
	userRepository       user.Repository
	logger               *zap.Logger
	mCounter             *prometheus.CounterVec
}

func NewIngestionService(
	cfg IngestionConfig,
	verifier ports.TokenVerifier,
	keys *KeyGenerator,
	store ports.ObjectStore,
	recorder *MetadataRecorder,
	storedFileRepository domain.Repository,
	userRepository user.Repository,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	if cfg.CompensationTimeout <= 0 {
		cfg.CompensationTimeout = defaultCompensationTimeout
	}

	return &IngestionService{
		cfg:                  cfg,
		verifier:             verifier,
		keys:                 keys,
		store:                store,
		recorder:             recorder,
		storedFileRepository: storedFileRepository,
		userRepository:       userRepository,
		logger:               logger,
		mCounter:             mCounter,
	}
}

// Ingest runs one upload through AUTHENTICATING -> VALIDATING -> CLASSIFYING -> UPLOADING -> PERSISTING.
// Bytes are written to the object store before any database write; if the metadata write fails
// the object is deleted again (best effort) and PERSISTENCE_ERROR is reported.
func (s *IngestionService) Ingest(
	ctx context.Context,
	credential string,
	extract ingest.Extractor,
) (*ingest.Result, error) {
	stage := StageAuthenticating
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, s.fail(stage, ingest.NewError(ingest.KindUnauthenticated, "invalid or missing credentials", err))
	}

	stage = StageValidating
	req, err := extract()
	if err != nil {
		if errors.Is(err, ingest.ErrPayloadTooLarge) {
			return nil, s.fail(stage, s.tooLarge(err))
		}
		return nil, s.fail(stage, ingest.NewError(ingest.KindBadRequest, "malformed upload request", err))
	}
	if len(req.Payload) == 0 {
		return nil, s.fail(stage, ingest.NewError(ingest.KindBadRequest, "file is required", nil))
	}
	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		return nil, s.fail(stage, ingest.NewError(ingest.KindBadRequest, "filename is required", nil))
	}
	if req.Size() > s.cfg.MaxSizeBytes {
		return nil, s.fail(stage, s.tooLarge(nil))
	}
	mimeType := strings.TrimSpace(req.MimeType)
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	stage = StageClassifying
	category := Classify(mimeType, req.CategoryHint)
	key, err := s.keys.Generate(s.cfg.Partitions.Name(PartitionOf(category)), fileName)
	if err != nil {
		return nil, s.fail(stage, ingest.NewError(ingest.KindStorageUnavailable, "could not allocate a storage key", err))
	}
	sum := blake2b.Sum256(req.Payload)

	stage = StageUploading
	address, err := s.store.Put(ctx, key, req.Payload, mimeType)
	if err != nil {
		// the write may still land after a timeout
		if ctx.Err() != nil {
			s.compensate(ctx, key)
		}
		return nil, s.fail(stage, ingest.NewError(ingest.KindStorageUnavailable, "file storage is unavailable", err))
	}

	stage = StagePersisting
	f, warnings, err := s.recorder.Record(ctx, FileMeta{
		OwnerID:    identity.UserID,
		ProjectID:  req.ProjectID,
		TaskID:     req.TaskID,
		FileName:   fileName,
		Category:   category,
		MimeType:   mimeType,
		SizeBytes:  uint64(req.Size()),
		Checksum:   hex.EncodeToString(sum[:]),
		Bucket:     s.cfg.Bucket,
		StorageKey: key,
		Address:    address,
	})
	if err != nil {
		s.compensate(ctx, key)
		return nil, s.fail(stage, ingest.NewError(ingest.KindPersistence, "failed to record file metadata", err))
	}

	s.logger.Info("file ingested",
		zap.String("stage", string(StageSucceeded)),
		zap.Stringer("file_uuid", f.UUID),
		zap.Stringer("user_uuid", identity.UserID),
		zap.String("category", category.String()),
		zap.String("storage_key", key),
		zap.Int("warnings", len(warnings)),
	)
	s.inc("file_ingest_succeeded_total")

	return &ingest.Result{File: f, Warnings: warnings}, nil
}

func (s *IngestionService) FindFiles(
	ctx context.Context,
	userUUID user.UUID,
	filter domain.Filter,
) (domain.StoredFiles, error) {
	id, err := s.userRepository.FetchInternalID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	fls, err := s.storedFileRepository.FetchStoredFiles(ctx, id, filter)
	if err != nil {
		return nil, err
	}

	return fls, nil
}

// compensate runs on a detached context so a cancelled request still cleans up.
func (s *IngestionService) compensate(ctx context.Context, key string) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.CompensationTimeout)
	defer cancel()

	if err := s.store.Delete(cctx, key); err != nil {
		s.logger.Error("compensating delete failed, object orphaned",
			zap.String("storage_key", key),
			zap.Error(err),
		)
		s.inc("file_orphaned_total")
		return
	}
	s.inc("file_compensated_total")
}

func (s *IngestionService) tooLarge(err error) *ingest.Error {
	return ingest.NewError(
		ingest.KindPayloadTooLarge,
		fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxSizeBytes),
		err,
	)
}

func (s *IngestionService) fail(stage Stage, err *ingest.Error) error {
	fields := []zap.Field{
		zap.String("stage", string(stage)),
		zap.String("state", string(StageFailed)),
		zap.String("kind", string(err.Kind)),
		zap.Error(err.Err),
	}
	switch err.Kind {
	case ingest.KindStorageUnavailable, ingest.KindPersistence:
		s.logger.Error("file ingest failed", fields...)
	default:
		s.logger.Info("file ingest rejected", fields...)
	}
	s.inc("file_ingest_" + strings.ToLower(string(err.Kind)) + "_total")

	return err
}

func (s *IngestionService) inc(label string) {
	if s.mCounter != nil {
		s.mCounter.WithLabelValues(label).Inc()
	}
}
