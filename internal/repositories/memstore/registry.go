package memstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/db/memory"
	"github.com/tragikomedia/shortener/internal/models"
)

// CodeRegistry реестр выданных коротких кодов в памяти.
type CodeRegistry struct {
	s *db.MemoryStorage
}

func NewCodeRegistry(store *db.MemoryStorage) *CodeRegistry {
	return &CodeRegistry{s: store}
}

func (r *CodeRegistry) Exists(_ context.Context, code string) (bool, error) {
	return r.s.Codes.IsExist(code), nil
}

// Reserve атомарно добавляет код в реестр. Возвращает false, если код уже выдан.
func (r *CodeRegistry) Reserve(ctx context.Context, code string) (bool, error) {
	err := memory.Set(ctx, code, &models.ShortCode{Code: code, CreatedAt: time.Now().UTC()}, r.s.Codes)
	if err != nil {
		if errors.Is(err, memory.ErrDuplicateKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to reserve code %s: %w", code, convertErrorType(err))
	}
	return true, nil
}

func (r *CodeRegistry) Codes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to list codes: %w", err)
	}
	return r.s.Codes.Keys(), nil
}
