package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tragikomedia/shortener/internal/controllers/middlewares"
	"github.com/tragikomedia/shortener/internal/services"
)

// LinksController публичные маршруты: создание ссылки и переход.
type LinksController struct {
	links  LinkService
	clicks services.ClickRecorder
}

func NewLinksController(links LinkService, clicks services.ClickRecorder) *LinksController {
	return &LinksController{links: links, clicks: clicks}
}

type createLinkOptions struct {
	MaxClicks any `json:"maxClicks"`
	ExpiresAt any `json:"expiresAt"`
}

type createLinkJSON struct {
	URL     string             `json:"url" binding:"required"`
	Options *createLinkOptions `json:"options"`
}

type createLinkForm struct {
	URL       string `form:"url" binding:"required"`
	MaxClicks string `form:"options[maxClicks]"`
	ExpiresAt string `form:"options[expiresAt]"`
}

type createLinkResponse struct {
	URI string `json:"uri"`
}

// Create обрабатывает POST /. Принимает JSON или форму.
//
// Ответы:
//   - 201 {uri} с коротким кодом
//   - 400 {error} при неверном адресе
//   - 500 {error} при ошибке выдачи кода или хранилища
func (c *LinksController) Create(ctx *gin.Context) {
	params, ok := c.bindCreate(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidURL})
		return
	}
	if user, found := middlewares.CurrentUser(ctx); found {
		params.OwnerID = &user.ID
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, err := c.links.Create(reqCtx, params)
	if err != nil {
		respondJSONError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, createLinkResponse{URI: link.Code})
}

func (c *LinksController) bindCreate(ctx *gin.Context) (services.CreateLinkParams, bool) {
	if isJSONRequest(ctx) {
		var req createLinkJSON
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return services.CreateLinkParams{}, false
		}
		params := services.CreateLinkParams{RawURL: req.URL}
		if req.Options != nil {
			params.Options = &services.LinkOptions{
				MaxClicks: req.Options.MaxClicks,
				ExpiresAt: req.Options.ExpiresAt,
			}
		}
		return params, true
	}

	var form createLinkForm
	if err := ctx.ShouldBind(&form); err != nil {
		return services.CreateLinkParams{}, false
	}
	params := services.CreateLinkParams{RawURL: form.URL}
	if form.MaxClicks != "" || form.ExpiresAt != "" {
		params.Options = &services.LinkOptions{}
		if form.MaxClicks != "" {
			params.Options.MaxClicks = form.MaxClicks
		}
		if form.ExpiresAt != "" {
			params.Options.ExpiresAt = form.ExpiresAt
		}
	}
	return params, true
}

// Redirect обрабатывает GET /:id.
// Переход записывается после ответа и только для ссылок с владельцем или лимитом кликов.
func (c *LinksController) Redirect(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, err := c.links.FindByCode(reqCtx, ctx.Param("id"))
	if err != nil {
		renderErrorPage(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "https://"+link.TargetURL)

	if !c.links.ShouldTrackClicks(link) {
		return
	}
	c.clicks.Record(context.WithoutCancel(ctx.Request.Context()), services.ClickEvent{
		Code:    link.Code,
		Referer: ctx.Request.Referer(),
		IP:      ctx.ClientIP(),
		Time:    time.Now().UTC(),
	})
}
