package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/db/memory"
	"github.com/tragikomedia/shortener/internal/models"
)

// UserRepo репозиторий пользователей в памяти.
type UserRepo struct {
	s  *db.MemoryStorage
	mu sync.Mutex // сериализует FindOrCreate
}

func NewUserRepo(store *db.MemoryStorage) *UserRepo {
	return &UserRepo{s: store}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := memory.Get[models.User](ctx, id, r.s.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, convertErrorType(err))
	}
	return user, nil
}

// FindOrCreate возвращает пользователя провайдера либо создает его при первом входе.
func (r *UserRepo) FindOrCreate(ctx context.Context, provider, externalID, name string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found, err := memory.FilterAll[models.User](ctx, r.s.Users, func(u models.User) bool {
		return u.Provider == provider && u.ExternalID == externalID
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s/%s: %w", provider, externalID, convertErrorType(err))
	}
	if len(found) > 0 {
		return &found[0], nil
	}

	user := &models.User{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Provider:   provider,
		ExternalID: externalID,
		Name:       name,
	}
	if setErr := memory.Set(ctx, user.ID, user, r.s.Users); setErr != nil {
		return nil, fmt.Errorf("failed to create user %s/%s: %w", provider, externalID, convertErrorType(setErr))
	}
	return user, nil
}
