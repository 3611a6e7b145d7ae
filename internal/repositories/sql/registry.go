package sql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tragikomedia/shortener/internal/models"
)

// CodeRegistry реестр выданных кодов в таблице short_codes. Уникальность обеспечивает первичный ключ.
type CodeRegistry struct {
	db *gorm.DB
}

func NewCodeRegistry(db *gorm.DB) *CodeRegistry {
	return &CodeRegistry{db: db}
}

func (r *CodeRegistry) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ShortCode{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check code %s: %w", code, convertErrorType(err))
	}
	return count > 0, nil
}

// Reserve вставляет код, игнорируя конфликт. Ноль затронутых строк означает, что код уже выдан.
func (r *CodeRegistry) Reserve(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ShortCode{Code: code, CreatedAt: time.Now().UTC()})
	if res.Error != nil {
		return false, fmt.Errorf("failed to reserve code %s: %w", code, convertErrorType(res.Error))
	}
	return res.RowsAffected == 1, nil
}

func (r *CodeRegistry) Codes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).Model(&models.ShortCode{}).Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list codes: %w", convertErrorType(err))
	}
	return codes, nil
}
