package services

import (
	"context"

	"project-manager-api/internal/application/ports"
	domain "project-manager-api/internal/domain/user"
)

type UserService struct {
	userRepository domain.Repository
}

func NewUserService(userRepository domain.Repository) ports.UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}
