package ports

import (
	"context"
	"errors"
)

var (
	// ErrStorageUnavailable marks transient backend failures (network, 5xx, timeouts, open breaker).
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageRejected marks requests the backend refused (4xx).
	ErrStorageRejected = errors.New("storage rejected request")
)

// ObjectStore keeps opaque payloads under a key. Delete of a missing key is not an error.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (address string, err error)
	Delete(ctx context.Context, key string) error
}
