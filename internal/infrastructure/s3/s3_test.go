package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"project-manager-api/config"
	"project-manager-api/internal/application/ports"
)

type FakeObjectAPI struct {
	PutObjectFunc    func(ctx context.Context, params *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	DeleteObjectFunc func(ctx context.Context, params *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
}

func (f *FakeObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return f.PutObjectFunc(ctx, params)
}

func (f *FakeObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return f.DeleteObjectFunc(ctx, params)
}

func responseError(status int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      errors.New(http.StatusText(status)),
		},
	}
}

func TestClient_Put(t *testing.T) {
	var got *s3.PutObjectInput
	var body []byte
	api := &FakeObjectAPI{PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		got = params
		b, err := io.ReadAll(params.Body)
		require.NoError(t, err)
		body = b
		return &s3.PutObjectOutput{}, nil
	}}

	c := newClient(api, zap.NewNop(), config.Storage{Region: "eu-central-1", BucketUploads: "uploads"})

	addr, err := c.Put(context.Background(), "images/1-abc.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://uploads.s3.eu-central-1.amazonaws.com/images/1-abc.png", addr)
	assert.Equal(t, "uploads", aws.ToString(got.Bucket))
	assert.Equal(t, "images/1-abc.png", aws.ToString(got.Key))
	assert.Equal(t, "image/png", aws.ToString(got.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(got.ContentLength))
	assert.Equal(t, []byte("png"), body)
}

func TestClient_PutErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"access denied", responseError(http.StatusForbidden), ports.ErrStorageRejected},
		{"bad request", responseError(http.StatusBadRequest), ports.ErrStorageRejected},
		{"throttled", responseError(http.StatusTooManyRequests), ports.ErrStorageUnavailable},
		{"server error", responseError(http.StatusServiceUnavailable), ports.ErrStorageUnavailable},
		{"network", errors.New("dial tcp: i/o timeout"), ports.ErrStorageUnavailable},
		{"deadline", context.DeadlineExceeded, ports.ErrStorageUnavailable},
		{"cancelled", context.Canceled, ports.ErrStorageUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			api := &FakeObjectAPI{PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
				return nil, tt.err
			}}
			c := newClient(api, zap.NewNop(), config.Storage{BucketUploads: "uploads"})

			addr, err := c.Put(context.Background(), "k", []byte("x"), "text/plain")
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, tt.err)
			assert.Empty(t, addr)
		})
	}
}

func TestClient_Delete(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "deleted"},
		{name: "missing key is fine", err: responseError(http.StatusNotFound)},
		{name: "server error", err: responseError(http.StatusInternalServerError), wantErr: ports.ErrStorageUnavailable},
		{name: "forbidden", err: responseError(http.StatusForbidden), wantErr: ports.ErrStorageRejected},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotKey string
			api := &FakeObjectAPI{DeleteObjectFunc: func(ctx context.Context, params *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
				gotKey = aws.ToString(params.Key)
				return &s3.DeleteObjectOutput{}, tt.err
			}}
			c := newClient(api, zap.NewNop(), config.Storage{BucketUploads: "uploads"})

			err := c.Delete(context.Background(), "other/1-abc")
			assert.Equal(t, "other/1-abc", gotKey)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPublicBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Storage
		want string
	}{
		{
			name: "explicit public url",
			cfg:  config.Storage{PublicBaseURL: "https://cdn.example.com/files/", BucketUploads: "uploads"},
			want: "https://cdn.example.com/files",
		},
		{
			name: "custom endpoint without scheme",
			cfg:  config.Storage{Endpoint: "minio:9000", BucketUploads: "uploads"},
			want: "http://minio:9000/uploads",
		},
		{
			name: "custom endpoint with tls",
			cfg:  config.Storage{Endpoint: "s3.internal", UseSSL: true, BucketUploads: "uploads"},
			want: "https://s3.internal/uploads",
		},
		{
			name: "aws virtual host",
			cfg:  config.Storage{Region: "us-east-1", BucketUploads: "uploads"},
			want: "https://uploads.s3.us-east-1.amazonaws.com",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, publicBaseURL(tt.cfg), tt.name)
	}
}
