package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"project-manager-api/internal/domain/user"
)

const defaultUserIDCacheSize = 4096

// UserRepository memoizes the uuid -> internal id mapping, which never changes
// once a user row exists. Every other call goes straight to the wrapped repository.
type UserRepository struct {
	user.Repository
	ids *lru.Cache[user.UUID, user.ID]
}

func NewUserRepository(next user.Repository, size int) (*UserRepository, error) {
	if size <= 0 {
		size = defaultUserIDCacheSize
	}
	ids, err := lru.New[user.UUID, user.ID](size)
	if err != nil {
		return nil, err
	}

	return &UserRepository{Repository: next, ids: ids}, nil
}

func (r *UserRepository) FetchInternalID(ctx context.Context, uuid user.UUID) (user.ID, error) {
	if id, ok := r.ids.Get(uuid); ok {
		return id, nil
	}

	id, err := r.Repository.FetchInternalID(ctx, uuid)
	if err != nil {
		return 0, err
	}
	r.ids.Add(uuid, id)

	return id, nil
}
