package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tragikomedia/shortener/internal/services"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// isJSONRequest Определяет тип запроса (json или нет) по заголовку Content-Type.
func isJSONRequest(ctx *gin.Context) bool {
	ct := ctx.Request.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/json")
}

// linkURI параметр пути с коротким кодом.
type linkURI struct {
	Code string `uri:"id" binding:"required,shortcode"`
}

// registerValidators добавляет правила валидации в движок gin.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("shortcode", func(fl validator.FieldLevel) bool {
		return services.ValidCode(fl.Field().String())
	})
}
