package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID        uint64
		UUID      uuid.UUID
		Email     string
		Role      string
		Name      string
		Lastname  string
		AvatarURL *string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
