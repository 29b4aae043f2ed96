package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"project-manager-api/internal/application/ports"
)

type Settings struct {
	Name        string
	MaxFailures uint32
	Timeout     time.Duration
}

// ObjectStore trips after consecutive backend failures and then fails fast
// with ports.ErrStorageUnavailable until a half-open trial call succeeds.
// Rejected requests (4xx) and calls abandoned by a cancelled caller do not
// count as failures.
type ObjectStore struct {
	next ports.ObjectStore
	cb   *gobreaker.CircuitBreaker
}

func New(next ports.ObjectStore, logger *zap.Logger, s Settings) *ObjectStore {
	maxFailures := s.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	st := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ports.ErrStorageRejected) ||
				errors.Is(err, context.Canceled)
		},
	}

	return &ObjectStore{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

func (o *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	res, err := o.cb.Execute(func() (interface{}, error) {
		addr, err := o.next.Put(ctx, key, data, contentType)
		return addr, callerErr(ctx, err)
	})
	if err != nil {
		return "", wrap(err)
	}
	return res.(string), nil
}

func (o *ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := o.cb.Execute(func() (interface{}, error) {
		return nil, callerErr(ctx, o.next.Delete(ctx, key))
	})
	if err != nil {
		return wrap(err)
	}
	return nil
}

func (o *ObjectStore) State() gobreaker.State { return o.cb.State() }

// callerErr tags a failure with context.Canceled when the caller gave up,
// whatever the backend error says.
func callerErr(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, context.Canceled) || !errors.Is(ctx.Err(), context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", err, context.Canceled)
}

func wrap(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	return err
}
