package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)
	UpdateAvatar(ctx context.Context, id ID, avatarURL string) error
}
