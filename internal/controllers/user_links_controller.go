package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tragikomedia/shortener/internal/controllers/middlewares"
	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/services"
)

// UserLinksController маршруты /user/links для владельца ссылок.
// Все обработчики требуют middlewares.RequireUser.
type UserLinksController struct {
	links LinkService
	now   func() time.Time
}

func NewUserLinksController(links LinkService) *UserLinksController {
	return &UserLinksController{links: links, now: time.Now}
}

// linkBrief элемент списка ссылок.
type linkBrief struct {
	ID        string `json:"id"`
	TargetURL string `json:"targetURL"`
	ShortURI  string `json:"shortURI"`
	Expired   bool   `json:"expired"`
}

type listLinksResponse struct {
	Name      string      `json:"name"`
	LinksData []linkBrief `json:"linksData"`
}

type clickData struct {
	Time    time.Time `json:"time"`
	Referer *string   `json:"referer"`
	IP      string    `json:"ip"`
}

type linkDetails struct {
	ID        string      `json:"id"`
	TargetURL string      `json:"targetURL"`
	ShortURI  string      `json:"shortURI"`
	Expired   bool        `json:"expired"`
	ExpiresAt *time.Time  `json:"expiresAt"`
	MaxClicks *int        `json:"maxClicks"`
	Clicks    []clickData `json:"clicks"`
}

type showLinkResponse struct {
	LinkData linkDetails `json:"linkData"`
}

// updateLinkRequest поля приходят как есть, проверка типов в сервисе.
type updateLinkRequest struct {
	Expired   any `json:"expired"`
	ExpiresAt any `json:"expiresAt"`
	MaxClicks any `json:"maxClicks"`
}

// List обрабатывает GET /user/links/.
func (c *UserLinksController) List(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		respondJSONError(ctx, services.ErrUnauthorized)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	links, err := c.links.ListByOwner(reqCtx, user.ID)
	if err != nil {
		respondJSONError(ctx, err)
		return
	}

	now := c.now()
	data := make([]linkBrief, 0, len(links))
	for i := range links {
		data = append(data, linkBrief{
			ID:        links[i].ID,
			TargetURL: links[i].TargetURL,
			ShortURI:  links[i].Code,
			Expired:   isExpired(&links[i], now),
		})
	}
	ctx.JSON(http.StatusOK, listLinksResponse{Name: user.Name, LinksData: data})
}

// Show обрабатывает GET /user/links/:id. Возвращает ссылку вместе с кликами.
func (c *UserLinksController) Show(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		respondJSONError(ctx, services.ErrUnauthorized)
		return
	}
	var uri linkURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		respondJSONError(ctx, services.ErrInvalidCode)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, err := c.links.FindOwned(reqCtx, user.ID, uri.Code)
	if err != nil {
		respondJSONError(ctx, err)
		return
	}
	clicks, err := c.links.Clicks(reqCtx, link)
	if err != nil {
		respondJSONError(ctx, err)
		return
	}

	details := linkDetails{
		ID:        link.ID,
		TargetURL: link.TargetURL,
		ShortURI:  link.Code,
		Expired:   isExpired(link, c.now()),
		ExpiresAt: link.ExpiresAt,
		MaxClicks: link.MaxClicks,
		Clicks:    make([]clickData, 0, len(clicks)),
	}
	for _, click := range clicks {
		details.Clicks = append(details.Clicks, clickData{
			Time:    click.Time,
			Referer: click.Referer,
			IP:      click.IP,
		})
	}
	ctx.JSON(http.StatusOK, showLinkResponse{LinkData: details})
}

// Update обрабатывает PUT /user/links/:id. Принимает любое непустое подмножество
// {expired, expiresAt, maxClicks}.
func (c *UserLinksController) Update(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		respondJSONError(ctx, services.ErrUnauthorized)
		return
	}
	var uri linkURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		respondJSONError(ctx, services.ErrInvalidCode)
		return
	}
	var req updateLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondJSONError(ctx, services.ErrValidation)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	_, err := c.links.Update(reqCtx, user.ID, uri.Code, services.LinkUpdate{
		Expired:   req.Expired,
		ExpiresAt: req.ExpiresAt,
		MaxClicks: req.MaxClicks,
	})
	if err != nil {
		respondJSONError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Delete обрабатывает DELETE /user/links/:id. Всегда отвечает 204, чтобы не раскрывать
// существование чужих ссылок.
func (c *UserLinksController) Delete(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		respondJSONError(ctx, services.ErrUnauthorized)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	if err := c.links.Delete(reqCtx, user.ID, ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
	}
	ctx.Status(http.StatusNoContent)
}

func isExpired(link *models.Link, now time.Time) bool {
	return link.Expired || link.IsExpired(now)
}
