package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/repositories"
)

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID возвращает пользователя. ErrNotFound, если пользователя нет.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get user: %w", ErrStorage, err)
	}
	return user, nil
}

// FindOrCreate возвращает пользователя внешнего провайдера, создавая его при первом входе.
func (s *UserService) FindOrCreate(ctx context.Context, provider, externalID, name string) (*models.User, error) {
	if provider == "" || externalID == "" {
		return nil, fmt.Errorf("%w: provider identity is empty", ErrValidation)
	}
	user, err := s.users.FindOrCreate(ctx, provider, externalID, name)
	if err != nil {
		return nil, fmt.Errorf("%w: find or create user: %w", ErrStorage, err)
	}
	return user, nil
}
