package sql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tragikomedia/shortener/internal/models"
)

type ClickRepo struct {
	db *gorm.DB
}

func NewClickRepo(db *gorm.DB) *ClickRepo {
	return &ClickRepo{db: db}
}

func (r *ClickRepo) Create(ctx context.Context, click *models.Click) error {
	if err := r.db.WithContext(ctx).Create(click).Error; err != nil {
		return fmt.Errorf("failed to create click %s: %w", click.ID, convertErrorType(err))
	}
	return nil
}

// GetByIDs возвращает клики в порядке переданных идентификаторов.
func (r *ClickRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Click, error) {
	if len(ids) == 0 {
		return []models.Click{}, nil
	}
	var found []models.Click
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to get clicks: %w", convertErrorType(err))
	}

	byID := make(map[string]models.Click, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	result := make([]models.Click, 0, len(found))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}
