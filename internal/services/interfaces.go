package services

import (
	"context"

	"github.com/tragikomedia/shortener/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

// LinkRepository описывает хранилище ссылок.
type LinkRepository interface {
	// Create сохраняет новую ссылку.
	Create(ctx context.Context, link *models.Link) error
	// GetByCode находит ссылку по короткому коду.
	GetByCode(ctx context.Context, code string) (*models.Link, error)
	// GetByOwnerAndCode находит ссылку по коду среди ссылок владельца.
	GetByOwnerAndCode(ctx context.Context, ownerID, code string) (*models.Link, error)
	// GetAllByOwner возвращает все ссылки владельца.
	GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error)
	// Update сохраняет срок действия, лимит кликов и флаг истечения.
	Update(ctx context.Context, link *models.Link) error
	// AppendClick добавляет идентификатор клика к ссылке и возвращает обновленную ссылку.
	AppendClick(ctx context.Context, code, clickID string) (*models.Link, error)
	// DeleteByOwnerAndCode удаляет ссылку владельца. bool сообщает, была ли запись удалена.
	DeleteByOwnerAndCode(ctx context.Context, ownerID, code string) (bool, error)
}

// ClickRepository описывает хранилище кликов.
type ClickRepository interface {
	Create(ctx context.Context, click *models.Click) error
	GetByIDs(ctx context.Context, ids []string) ([]models.Click, error)
}

// UserRepository описывает хранилище пользователей.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	FindOrCreate(ctx context.Context, provider, externalID, name string) (*models.User, error)
}

// CodeRegistry реестр всех выданных коротких кодов.
type CodeRegistry interface {
	// Exists проверяет, выдан ли код.
	Exists(ctx context.Context, code string) (bool, error)
	// Reserve атомарно проверяет и добавляет код. false означает, что код уже выдан.
	Reserve(ctx context.Context, code string) (bool, error)
	// Codes возвращает все выданные коды.
	Codes(ctx context.Context) ([]string, error)
}

// CodeAllocator выдает уникальные короткие коды.
type CodeAllocator interface {
	Allocate(ctx context.Context) (string, error)
}
