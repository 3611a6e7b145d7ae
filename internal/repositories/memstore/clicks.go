package memstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/db/memory"
	"github.com/tragikomedia/shortener/internal/models"
)

// ClickRepo репозиторий кликов в памяти.
type ClickRepo struct {
	s *db.MemoryStorage
}

func NewClickRepo(store *db.MemoryStorage) *ClickRepo {
	return &ClickRepo{s: store}
}

func (r *ClickRepo) Create(ctx context.Context, click *models.Click) error {
	if err := memory.Set(ctx, click.ID, click, r.s.Clicks); err != nil {
		return fmt.Errorf("failed to create click %s: %w", click.ID, convertErrorType(err))
	}
	return nil
}

// GetByIDs возвращает клики в порядке переданных идентификаторов. Отсутствующие клики пропускаются.
func (r *ClickRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Click, error) {
	result := make([]models.Click, 0, len(ids))
	for _, id := range ids {
		click, err := memory.Get[models.Click](ctx, id, r.s.Clicks)
		if err != nil {
			if errors.Is(err, memory.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get click %s: %w", id, convertErrorType(err))
		}
		result = append(result, *click)
	}
	return result, nil
}
