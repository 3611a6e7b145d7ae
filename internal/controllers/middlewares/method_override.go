package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MethodOverrideParam параметр запроса с подменяемым методом.
const MethodOverrideParam = "_method"

// MethodOverride обрабатывает POST запрос обработчиком метода из ?_method=.
// Для HTML форм, которые не умеют отправлять DELETE и PUT.
func MethodOverride(handlers map[string]gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := strings.ToUpper(c.Query(MethodOverrideParam))
		handler, ok := handlers[method]
		if !ok {
			c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
			return
		}
		c.Request.Method = method
		handler(c)
	}
}
