package sql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/repositories"
)

type LinkRepo struct {
	db *gorm.DB
}

func NewLinkRepo(db *gorm.DB) *LinkRepo {
	return &LinkRepo{db: db}
}

func (r *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("failed to create link %s: %w", link.Code, convertErrorType(err))
	}
	return nil
}

func (r *LinkRepo) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to get link by code %s: %w", code, convertErrorType(err))
	}
	return &link, nil
}

func (r *LinkRepo) GetByOwnerAndCode(ctx context.Context, ownerID, code string) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND code = ?", ownerID, code).
		First(&link).Error
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get link by owner %s and code %s: %w",
			ownerID, code, convertErrorType(err),
		)
	}
	return &link, nil
}

func (r *LinkRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get links by owner %s: %w", ownerID, convertErrorType(err))
	}
	return links, nil
}

// Update перезаписывает срок, лимит кликов и флаг истечения. Список кликов не трогается.
func (r *LinkRepo) Update(ctx context.Context, link *models.Link) error {
	res := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("code = ?", link.Code).
		Updates(map[string]any{
			"expires_at": link.ExpiresAt,
			"max_clicks": link.MaxClicks,
			"expired":    link.Expired,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update link %s: %w", link.Code, convertErrorType(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update link %s: %w", link.Code, repositories.ErrNotFound)
	}
	return nil
}

// AppendClick добавляет идентификатор клика в транзакции с блокировкой строки.
func (r *LinkRepo) AppendClick(ctx context.Context, code, clickID string) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", code).
			First(&link).Error; err != nil {
			return err //nolint:wrapcheck
		}
		link.ClickIDs = append(link.ClickIDs, clickID)
		link.UpdatedAt = time.Now().UTC()
		return tx.Model(&link).Select("click_ids", "updated_at").Updates(&link).Error //nolint:wrapcheck
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append click to link %s: %w", code, convertErrorType(err))
	}
	return &link, nil
}

func (r *LinkRepo) DeleteByOwnerAndCode(ctx context.Context, ownerID, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND code = ?", ownerID, code).
		Delete(&models.Link{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete link %s: %w", code, convertErrorType(res.Error))
	}
	return res.RowsAffected > 0, nil
}
