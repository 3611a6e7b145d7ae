package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const msgUnavailable = "Storage unavailable"

// PingController проверка готовности сервиса для балансировщика и оркестратора.
type PingController struct {
	deps ConnectionChecker
}

func NewPingController(deps ConnectionChecker) *PingController {
	return &PingController{deps: deps}
}

// Ping обрабатывает GET /ping. 200 "pong", если хранилище и реестр кодов отвечают,
// иначе 500 {error}. Подробности пишутся только в лог.
func (c *PingController) Ping(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	if err := c.deps.CheckConnection(reqCtx); err != nil {
		_ = ctx.Error(fmt.Errorf("ping: %w", err))
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: msgUnavailable})
		return
	}
	ctx.String(http.StatusOK, "pong")
}
