package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tragikomedia/shortener/internal/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, convertErrorType(err))
	}
	return &user, nil
}

func (r *UserRepo) FindOrCreate(ctx context.Context, provider, externalID, name string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where(models.User{Provider: provider, ExternalID: externalID}).
		Attrs(models.User{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}).
		FirstOrCreate(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// параллельный вход того же пользователя успел создать запись
		err = r.db.WithContext(ctx).
			Where("provider = ? AND external_id = ?", provider, externalID).
			First(&user).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find or create user %s/%s: %w", provider, externalID, convertErrorType(err))
	}
	return &user, nil
}
