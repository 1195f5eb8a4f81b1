package service

import (
	"context"
	"fmt"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/store"
	"github.com/guanggu/icollege/models"
)

type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// FindByName returns the users whose name contains name, ignoring case. An
// empty name matches every user.
func (s *userService) FindByName(ctx context.Context, name string) ([]models.User, error) {
	users, err := s.userRepository.FindByName(ctx, name)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("name", name).Msg("user search by name failed")
		return nil, fmt.Errorf("user search by name failed: %w", err)
	}

	return users, nil
}
