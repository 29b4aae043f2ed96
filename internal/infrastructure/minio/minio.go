package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"project-manager-api/config"
	"project-manager-api/internal/application/ports"
)

const bootstrapTimeout = 10 * time.Second

type bucketAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Storage struct {
	api     bucketAPI
	logger  *zap.Logger
	bucket  string
	baseURL string
}

// New connects to the endpoint and creates the uploads bucket when missing.
func New(ctx context.Context, logger *zap.Logger, cfg config.Storage) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	s := newStorage(client, logger, cfg)
	if err = s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func newStorage(api bucketAPI, logger *zap.Logger, cfg config.Storage) *Storage {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.BucketUploads)
	}

	return &Storage{
		api:     api,
		logger:  logger,
		bucket:  cfg.BucketUploads,
		baseURL: base,
	}
}

func (s *Storage) ensureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err = s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// another replica won the race
		if minio.ToErrorResponse(err).Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	s.logger.Info("bucket created", zap.String("bucket", s.bucket))

	return nil
}

func (s *Storage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.api.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", classify("put object", key, err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err == nil {
		return nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return nil
	}

	return classify("remove object", key, err)
}

func (s *Storage) GetBucket() string { return s.bucket }

func classify(op, key string, err error) error {
	status := minio.ToErrorResponse(err).StatusCode
	if status >= 400 && status < 500 && status != http.StatusTooManyRequests && status != http.StatusRequestTimeout {
		return fmt.Errorf("%s %q: %w: %w", op, key, ports.ErrStorageRejected, err)
	}
	return fmt.Errorf("%s %q: %w: %w", op, key, ports.ErrStorageUnavailable, err)
}
