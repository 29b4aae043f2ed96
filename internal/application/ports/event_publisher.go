package ports

import (
	"context"

	"project-manager-api/internal/domain/activity"
)

type EventPublisher interface {
	// Publish enqueues without blocking; false means the event was dropped.
	Publish(rec activity.Record) bool
	PublisherWorker(ctx context.Context)
	Close() error
}
