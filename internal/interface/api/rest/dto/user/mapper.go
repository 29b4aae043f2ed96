package user

import (
	"project-manager-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		UUID:      uDomain.UUID,
		Email:     uDomain.Email,
		Role:      uDomain.Role,
		Name:      uDomain.Name,
		Lastname:  uDomain.Lastname,
		AvatarURL: uDomain.AvatarURL,
		CreatedAt: uDomain.CreatedAt,
	}
}
