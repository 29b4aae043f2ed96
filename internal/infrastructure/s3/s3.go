package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"project-manager-api/config"
	"project-manager-api/internal/application/ports"
)

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Client struct {
	api     objectAPI
	logger  *zap.Logger
	region  string
	bucket  string
	baseURL string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Storage,
) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true
		}
	})

	return newClient(api, logger, cfg), nil
}

func newClient(api objectAPI, logger *zap.Logger, cfg config.Storage) *Client {
	return &Client{
		api:     api,
		logger:  logger,
		region:  cfg.Region,
		bucket:  cfg.BucketUploads,
		baseURL: publicBaseURL(cfg),
	}
}

func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", classify("put object", key, err)
	}

	return c.GetPublicURL(key), nil
}

// Delete is idempotent: S3 answers 204 for a missing key and a 404 is swallowed as well.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil
		}
		return classify("delete object", key, err)
	}

	c.logger.Debug("object deleted", zap.String("bucket", c.bucket), zap.String("key", key))
	return nil
}

func (c *Client) GetPublicURL(key string) string {
	return c.baseURL + "/" + key
}

func (c *Client) GetBucket() string { return c.bucket }

func publicBaseURL(cfg config.Storage) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return endpointURL(cfg.Endpoint, cfg.UseSSL) + "/" + cfg.BucketUploads
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.BucketUploads, cfg.Region)
	}
}

func endpointURL(endpoint string, useSSL bool) string {
	endpoint = strings.TrimRight(endpoint, "/")
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

func statusOf(err error) int {
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		return re.HTTPStatusCode()
	}
	return 0
}

// classify maps 4xx answers to ErrStorageRejected and everything else
// (transport errors, throttling, 5xx) to ErrStorageUnavailable.
func classify(op, key string, err error) error {
	status := statusOf(err)
	if status >= 400 && status < 500 && status != http.StatusTooManyRequests && status != http.StatusRequestTimeout {
		return fmt.Errorf("%s %q: %w: %w", op, key, ports.ErrStorageRejected, err)
	}
	return fmt.Errorf("%s %q: %w: %w", op, key, ports.ErrStorageUnavailable, err)
}
