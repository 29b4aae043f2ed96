package activity

import "context"

type Repository interface {
	AppendActivity(ctx context.Context, rec Record) error
}
