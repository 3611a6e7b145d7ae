package middlewares

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsMaxAge = 12 * time.Hour

// CORS разрешает клиентскому приложению clientURL обращаться к API с токеном в Authorization.
// Если clientURL пуст или не является http(s) адресом, разрешен любой источник.
func CORS(clientURL string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Location"},
		MaxAge:        corsMaxAge,
	}
	if origin := originOf(clientURL); origin != "" {
		conf.AllowOrigins = []string{origin}
	} else {
		conf.AllowAllOrigins = true
	}
	return cors.New(conf)
}

// originOf оставляет от адреса схему и хост.
func originOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
