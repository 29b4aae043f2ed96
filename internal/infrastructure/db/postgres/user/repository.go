package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"project-manager-api/internal/domain/user"
	"project-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByID, uuid.String()).Scan(
		&u.ID,
		&u.UUID,
		&u.Email,
		&u.Role,
		&u.Name,
		&u.Lastname,
		&u.AvatarURL,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchInternalID(ctx context.Context, uuid user.UUID) (user.ID, error) {
	var id uint64
	if err := r.db.QueryRow(ctx, SelectIdByUUID, uuid.String()).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("user uuid %s: %w", uuid.String(), user.ErrNotFound)
		}
		return 0, err
	}

	return user.ID(id), nil
}

func (r *Repository) UpdateAvatar(ctx context.Context, id user.ID, avatarURL string) error {
	tag, err := r.db.Exec(ctx, UpdateAvatarURL, avatarURL, uint64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user id %d: %w", id, user.ErrNotFound)
	}

	return nil
}
