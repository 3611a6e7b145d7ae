package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/repositories"
)

// LinkOptions необязательные параметры ссылки при создании. Значения приходят из JSON как есть,
// некорректные значения игнорируются.
type LinkOptions struct {
	MaxClicks any
	ExpiresAt any
}

// CreateLinkParams параметры создания короткой ссылки.
type CreateLinkParams struct {
	RawURL  string
	Options *LinkOptions
	// OwnerID nil для анонимных ссылок.
	OwnerID *string
}

// LinkUpdate изменения ссылки владельцем. nil означает, что поле не передано.
type LinkUpdate struct {
	Expired   any
	ExpiresAt any
	MaxClicks any
}

func (u LinkUpdate) empty() bool {
	return u.Expired == nil && u.ExpiresAt == nil && u.MaxClicks == nil
}

// ClickEvent описывает переход по короткой ссылке.
type ClickEvent struct {
	Code    string    `json:"code"`
	Referer string    `json:"referer,omitempty"`
	IP      string    `json:"ip"`
	Time    time.Time `json:"time"`
}

type LinkService struct {
	links     LinkRepository
	clicks    ClickRepository
	allocator CodeAllocator
	observer  Observer
	logger    *zap.Logger
	now       func() time.Time
}

type LinkServiceOption func(*LinkService)

func WithLinkObserver(o Observer) LinkServiceOption {
	return func(s *LinkService) {
		s.observer = o
	}
}

func WithLinkLogger(l *zap.Logger) LinkServiceOption {
	return func(s *LinkService) {
		s.logger = l
	}
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) LinkServiceOption {
	return func(s *LinkService) {
		s.now = now
	}
}

func NewLinkService(
	links LinkRepository,
	clicks ClickRepository,
	allocator CodeAllocator,
	opts ...LinkServiceOption,
) *LinkService {
	s := &LinkService{
		links:     links,
		clicks:    clicks,
		allocator: allocator,
		observer:  nopObserver{},
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create создает короткую ссылку.
//
// Возможные ошибки:
//   - ErrInvalidURL - адрес не прошел проверку
//   - ErrAllocation, ErrRegistryWrite - не удалось выдать код
//   - ErrStorage - ошибка записи ссылки
func (s *LinkService) Create(ctx context.Context, params CreateLinkParams) (*models.Link, error) {
	if !ValidURL(params.RawURL) {
		return nil, ErrInvalidURL
	}

	code, err := s.allocator.Allocate(ctx)
	if err != nil {
		if errors.Is(err, ErrRegistryWrite) {
			return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
		}
		return nil, err
	}

	link := models.Link{
		ID:        uuid.NewString(),
		Code:      code,
		TargetURL: ExtractTargetURL(params.RawURL),
	}
	if params.OwnerID != nil && *params.OwnerID != "" {
		owner := *params.OwnerID
		link.OwnerID = &owner
	}
	s.applyOptions(&link, params.Options)

	if err = s.links.Create(ctx, &link); err != nil {
		return nil, fmt.Errorf("%w: create link: %w", ErrStorage, err)
	}
	s.observer.LinkCreated(link.OwnerID != nil)
	return &link, nil
}

// applyOptions прикрепляет только корректные опции.
func (s *LinkService) applyOptions(link *models.Link, opts *LinkOptions) {
	if opts == nil {
		return
	}
	if opts.MaxClicks != nil {
		if n, err := parseMaxClicks(opts.MaxClicks); err == nil {
			link.MaxClicks = &n
		} else {
			s.logger.Debug("maxClicks option ignored", zap.Error(err))
		}
	}
	if opts.ExpiresAt != nil {
		if t, err := parseExpiresAt(opts.ExpiresAt); err == nil {
			link.ExpiresAt = &t
		} else {
			s.logger.Debug("expiresAt option ignored", zap.Error(err))
		}
	}
}

// FindByCode находит ссылку для перехода.
//
// Возможные ошибки:
//   - ErrInvalidCode - код неверного формата
//   - ErrNotFound - ссылки нет
//   - ErrExpired - ссылка истекла
//   - ErrStorage
func (s *LinkService) FindByCode(ctx context.Context, code string) (*models.Link, error) {
	if !ValidCode(code) {
		s.observer.LinkResolved(OutcomeInvalidCode)
		return nil, ErrInvalidCode
	}

	link, err := s.links.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.observer.LinkResolved(OutcomeNotFound)
			return nil, ErrNotFound
		}
		s.observer.LinkResolved(OutcomeError)
		return nil, fmt.Errorf("%w: get link %s: %w", ErrStorage, code, err)
	}

	if link.Expired || link.IsExpired(s.now()) {
		s.markExpired(ctx, link)
		s.observer.LinkResolved(OutcomeExpired)
		return nil, ErrExpired
	}

	s.observer.LinkResolved(OutcomeRedirect)
	return link, nil
}

// markExpired сохраняет флаг истечения при первом обнаружении.
func (s *LinkService) markExpired(ctx context.Context, link *models.Link) {
	if link.Expired {
		return
	}
	link.Expired = true
	if err := s.links.Update(ctx, link); err != nil {
		s.logger.Warn("failed to persist expired flag", zap.String("code", link.Code), zap.Error(err))
	}
}

// ShouldTrackClicks сообщает, нужно ли записывать переходы по ссылке.
func (s *LinkService) ShouldTrackClicks(link *models.Link) bool {
	return link.OwnerID != nil || link.MaxClicks != nil
}

// RecordClick записывает переход. Сначала обновляется ссылка, затем сохраняется сам клик.
// Ошибка сохранения клика логируется: счетчик ссылки уже увеличен.
func (s *LinkService) RecordClick(ctx context.Context, event ClickEvent) error {
	click := models.Click{
		ID:   uuid.NewString(),
		Time: event.Time,
		IP:   event.IP,
	}
	if click.Time.IsZero() {
		click.Time = s.now()
	}
	if event.Referer != "" {
		ref := event.Referer
		click.Referer = &ref
	}

	link, err := s.links.AppendClick(ctx, event.Code, click.ID)
	if err != nil {
		s.observer.ClickRecorded(err)
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: append click to %s: %w", ErrStorage, event.Code, err)
	}

	click.LinkID = link.ID
	if err = s.clicks.Create(ctx, &click); err != nil {
		s.observer.ClickRecorded(err)
		s.logger.Error("failed to store click",
			zap.String("code", event.Code),
			zap.String("click_id", click.ID),
			zap.Error(err),
		)
		return nil
	}
	s.observer.ClickRecorded(nil)
	return nil
}

// ListByOwner возвращает ссылки пользователя.
func (s *LinkService) ListByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	links, err := s.links.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list links: %w", ErrStorage, err)
	}
	return links, nil
}

// FindOwned возвращает ссылку, если она принадлежит пользователю. Чужая ссылка неотличима от отсутствующей.
func (s *LinkService) FindOwned(ctx context.Context, ownerID, code string) (*models.Link, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	if !ValidCode(code) {
		return nil, ErrInvalidCode
	}
	link, err := s.links.GetByOwnerAndCode(ctx, ownerID, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get link %s: %w", ErrStorage, code, err)
	}
	return link, nil
}

// Clicks возвращает клики ссылки в порядке записи.
func (s *LinkService) Clicks(ctx context.Context, link *models.Link) ([]models.Click, error) {
	if len(link.ClickIDs) == 0 {
		return []models.Click{}, nil
	}
	clicks, err := s.clicks.GetByIDs(ctx, link.ClickIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: get clicks for %s: %w", ErrStorage, link.Code, err)
	}
	return clicks, nil
}

// Update меняет срок действия, лимит кликов и флаг истечения ссылки владельца.
// Применяются только переданные поля, флаг истечения из остальных полей не выводится.
//
// Возможные ошибки:
//   - ErrValidation - пустое или некорректное тело
//   - ErrInvalidCode
//   - ErrNotFound - ссылки нет или она чужая
//   - ErrStorage
func (s *LinkService) Update(ctx context.Context, ownerID, code string, upd LinkUpdate) (*models.Link, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	if !ValidCode(code) {
		return nil, ErrInvalidCode
	}
	if upd.empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	var (
		expired   *bool
		expiresAt *time.Time
		maxClicks *int
	)
	if upd.Expired != nil {
		v, err := parseExpired(upd.Expired)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		expired = &v
	}
	if upd.ExpiresAt != nil {
		v, err := parseExpiresAt(upd.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		expiresAt = &v
	}
	if upd.MaxClicks != nil {
		v, err := parseMaxClicks(upd.MaxClicks)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		maxClicks = &v
	}

	link, err := s.FindOwned(ctx, ownerID, code)
	if err != nil {
		return nil, err
	}

	if expiresAt != nil {
		link.ExpiresAt = expiresAt
	}
	if maxClicks != nil {
		link.MaxClicks = maxClicks
	}
	if expired != nil {
		link.Expired = *expired
	}

	if err = s.links.Update(ctx, link); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: update link %s: %w", ErrStorage, code, err)
	}
	return link, nil
}

// Delete удаляет ссылку владельца. Отсутствие ссылки и неверный код ошибкой не считаются.
func (s *LinkService) Delete(ctx context.Context, ownerID, code string) error {
	if ownerID == "" {
		return ErrUnauthorized
	}
	if !ValidCode(code) {
		return nil
	}
	deleted, err := s.links.DeleteByOwnerAndCode(ctx, ownerID, code)
	if err != nil {
		return fmt.Errorf("%w: delete link %s: %w", ErrStorage, code, err)
	}
	if deleted {
		s.logger.Debug("link deleted", zap.String("code", code), zap.String("owner", ownerID))
	}
	return nil
}
