package ports

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the caller resolved from a bearer credential.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
