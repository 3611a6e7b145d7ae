package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tragikomedia/shortener/internal/config"
	"github.com/tragikomedia/shortener/internal/controllers/middlewares"
	"github.com/tragikomedia/shortener/internal/controllers/views"
	"github.com/tragikomedia/shortener/internal/metrics"
	"github.com/tragikomedia/shortener/internal/services"
)

type RouterParams struct {
	LinkService LinkService
	UserService UserService
	PingService ConnectionChecker
	ClickRecord services.ClickRecorder
	Metrics     *metrics.Metrics
	Providers   []*OAuthProvider
	AppConf     config.Config
	Logger      *zap.Logger
}

// SetupRouter собирает gin роутер со всеми маршрутами сервиса.
func SetupRouter(params RouterParams) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(middlewares.CORS(params.AppConf.ClientURL))
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(params.Metrics.Handler()))
	}
	r.Use(middlewares.GzipMiddleware())
	r.SetHTMLTemplate(views.Templates())

	jwtSecret := []byte(params.AppConf.JWTSecret)
	requireUser := middlewares.RequireUser(params.UserService, jwtSecret)

	if params.PingService != nil {
		r.GET("/ping", NewPingController(params.PingService).Ping)
	}

	links := NewLinksController(params.LinkService, params.ClickRecord)
	r.POST("/", middlewares.AttemptUser(params.UserService, jwtSecret), links.Create)
	r.GET("/:id", links.Redirect)

	userLinks := NewUserLinksController(params.LinkService)
	ug := r.Group("/user/links", requireUser)
	// без слэша отвечаем сразу: при редиректе клиент может не повторить Authorization
	ug.GET("", userLinks.List)
	ug.GET("/", userLinks.List)
	ug.GET("/:id", userLinks.Show)
	ug.PUT("/:id", userLinks.Update)
	ug.DELETE("/:id", userLinks.Delete)
	ug.POST("/:id", middlewares.MethodOverride(map[string]gin.HandlerFunc{
		http.MethodDelete: userLinks.Delete,
		http.MethodPut:    userLinks.Update,
	}))

	if len(params.Providers) > 0 {
		auth := NewAuthController(params.UserService, jwtSecret, params.AppConf.ClientURL, params.Providers...)
		r.GET("/auth/:provider", auth.Login)
		r.GET("/auth/:provider/callback", auth.Callback)
	}

	return r
}
