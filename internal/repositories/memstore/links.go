package memstore

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/db/memory"
	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/repositories"
)

// LinkRepo репозиторий ссылок в памяти. Ключ записи - короткий код.
type LinkRepo struct {
	s *db.MemoryStorage
}

// NewLinkRepo создает новый экземпляр репозитория ссылок.
func NewLinkRepo(store *db.MemoryStorage) *LinkRepo {
	return &LinkRepo{s: store}
}

// Create сохраняет новую ссылку. Дубликат кода возвращает repositories.ErrDuplicateKey.
func (r *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	now := time.Now().UTC()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = now
	}
	link.UpdatedAt = now
	if err := memory.Set(ctx, link.Code, link, r.s.Links); err != nil {
		return fmt.Errorf("failed to create link %s: %w", link.Code, convertErrorType(err))
	}
	return nil
}

// GetByCode находит ссылку по короткому коду.
func (r *LinkRepo) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	link, err := memory.Get[models.Link](ctx, code, r.s.Links)
	if err != nil {
		return nil, fmt.Errorf("failed to get link by code %s: %w", code, convertErrorType(err))
	}
	return link, nil
}

// GetByOwnerAndCode находит ссылку по коду, принадлежащую владельцу.
// Ссылка другого владельца неотличима от отсутствующей.
func (r *LinkRepo) GetByOwnerAndCode(ctx context.Context, ownerID, code string) (*models.Link, error) {
	link, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !link.IsOwnedBy(ownerID) {
		return nil, fmt.Errorf("failed to get link by owner %s and code %s: %w", ownerID, code, repositories.ErrNotFound)
	}
	return link, nil
}

// GetAllByOwner возвращает все ссылки владельца в порядке создания.
func (r *LinkRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	links, err := memory.FilterAll[models.Link](ctx, r.s.Links, func(l models.Link) bool {
		return l.IsOwnedBy(ownerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get links by owner %s: %w", ownerID, convertErrorType(err))
	}
	slices.SortFunc(links, func(a, b models.Link) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return links, nil
}

// Update перезаписывает изменяемые поля ссылки: срок, лимит кликов и флаг истечения.
// Список кликов берется из хранилища, чтобы не потерять конкурентно записанные переходы.
func (r *LinkRepo) Update(ctx context.Context, link *models.Link) error {
	updated, err := memory.Update[models.Link](ctx, link.Code, r.s.Links, func(stored *models.Link) error {
		stored.ExpiresAt = link.ExpiresAt
		stored.MaxClicks = link.MaxClicks
		stored.Expired = link.Expired
		stored.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update link %s: %w", link.Code, convertErrorType(err))
	}
	*link = *updated
	return nil
}

// AppendClick атомарно добавляет идентификатор клика к ссылке.
func (r *LinkRepo) AppendClick(ctx context.Context, code, clickID string) (*models.Link, error) {
	link, err := memory.Update[models.Link](ctx, code, r.s.Links, func(stored *models.Link) error {
		stored.ClickIDs = append(stored.ClickIDs, clickID)
		stored.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append click to link %s: %w", code, convertErrorType(err))
	}
	return link, nil
}

// DeleteByOwnerAndCode удаляет ссылку владельца. Возвращает false, если удалять было нечего.
func (r *LinkRepo) DeleteByOwnerAndCode(ctx context.Context, ownerID, code string) (bool, error) {
	deleted, err := memory.DeleteFunc[models.Link](ctx, code, r.s.Links, func(l models.Link) bool {
		return l.IsOwnedBy(ownerID)
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete link %s: %w", code, convertErrorType(err))
	}
	return deleted, nil
}
