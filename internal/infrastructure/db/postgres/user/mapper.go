package user

import (
	domain "project-manager-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UUID:      model.UUID,
		Email:     model.Email,
		Role:      model.Role,
		Name:      model.Name,
		Lastname:  model.Lastname,
		AvatarURL: model.AvatarURL,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}
