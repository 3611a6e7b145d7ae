package controllers

import (
	"context"

	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/services"
)

//go:generate mockgen -source=interfaces.go -destination=mocksctrl/store.go -package=mocksctrl

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// LinkService операции над ссылками, нужные контроллерам.
type LinkService interface {
	Create(ctx context.Context, params services.CreateLinkParams) (*models.Link, error)
	FindByCode(ctx context.Context, code string) (*models.Link, error)
	// ShouldTrackClicks сообщает, нужно ли записывать переходы по ссылке.
	ShouldTrackClicks(link *models.Link) bool
	ListByOwner(ctx context.Context, ownerID string) ([]models.Link, error)
	FindOwned(ctx context.Context, ownerID, code string) (*models.Link, error)
	Clicks(ctx context.Context, link *models.Link) ([]models.Click, error)
	Update(ctx context.Context, ownerID, code string, upd services.LinkUpdate) (*models.Link, error)
	Delete(ctx context.Context, ownerID, code string) error
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	FindOrCreate(ctx context.Context, provider, externalID, name string) (*models.User, error)
}
