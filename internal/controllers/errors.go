package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tragikomedia/shortener/internal/services"
)

// Сообщения об ошибках для клиента.
const (
	msgInvalidURL   = "Invalid URL"
	msgInvalidBody  = "Invalid request data"
	msgInvalidCode  = "Invalid link id"
	msgNotFound     = "Link not found"
	msgExpired      = "Link has expired"
	msgUnauthorized = "Unauthorized"
	msgInternal     = "Internal server error"
)

// errorResponse тело ответа JSON эндпоинтов при ошибке.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFromError сопоставляет ошибку сервисного слоя статусу и сообщению.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidURL):
		return http.StatusBadRequest, msgInvalidURL
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, msgInvalidBody
	case errors.Is(err, services.ErrInvalidCode):
		return http.StatusBadRequest, msgInvalidCode
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, services.ErrExpired):
		return http.StatusNotFound, msgExpired
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, msgUnauthorized
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// respondJSONError отвечает {error}. Серверные ошибки попадают в лог через ctx.Error.
func respondJSONError(ctx *gin.Context, err error) {
	status, msg := statusFromError(err)
	if status >= http.StatusInternalServerError {
		_ = ctx.Error(err)
	}
	ctx.JSON(status, errorResponse{Error: msg})
}

// renderErrorPage отображает страницу ошибки для браузерных маршрутов.
// Неверный код здесь неотличим от отсутствующей ссылки.
func renderErrorPage(ctx *gin.Context, err error) {
	status, msg := statusFromError(err)
	switch {
	case errors.Is(err, services.ErrInvalidCode):
		status, msg = http.StatusNotFound, msgNotFound
	case status >= http.StatusInternalServerError:
		_ = ctx.Error(err)
	}
	ctx.HTML(status, "error.html", gin.H{"status": status, "error": msg})
}
