package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tragikomedia/shortener/internal/config"
	"github.com/tragikomedia/shortener/internal/controllers"
	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/events"
	"github.com/tragikomedia/shortener/internal/logs"
	"github.com/tragikomedia/shortener/internal/metrics"
	"github.com/tragikomedia/shortener/internal/repositories/redisstore"
	"github.com/tragikomedia/shortener/internal/services"
	"github.com/tragikomedia/shortener/internal/tlscert"
)

const (
	connectTimeout    = 10 * time.Second
	warmTimeout       = 30 * time.Second
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

type closer interface {
	Close() error
}

type App struct {
	config   config.Config
	services *services.Services
	metrics  *metrics.Metrics
	conn     closer
	redis    *redis.Client
	Logger   *zap.Logger
}

// New собирает приложение: логгер, хранилище, реестр кодов, метрики и сервисы.
func New(conf config.Config) (*App, error) {
	logger, err := logs.New(logs.WithLevel(conf.LogLevel), logs.WithFile(conf.LogFile))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	conn, err := db.NewConnectionFactory(ctx, db.FactoryConfig{
		StorageType:  whatIsDBStorageType(&conf),
		PostgresDSN:  &conf.DatabaseDSN,
		SqliteDBPath: &conf.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	a := &App{config: conf, conn: conn.(closer), Logger: logger}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(reg)

	params := services.FactoryParams{
		Conn:     conn,
		Observer: a.metrics,
		Logger:   logger.With(zap.String("component", "services")),
	}
	if conf.RedisAddr != "" {
		a.redis, err = db.NewRedisClient(ctx, conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("init code registry: %w", err)
		}
		params.Registry = redisstore.NewCodeRegistry(a.redis, redisstore.DefaultCodesKey)
	}

	a.services, err = services.Factory(params)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("init services: %w", err)
	}
	return a, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер и блокируется до сигнала остановки.
func (a *App) Run() error {
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.warmAllocator(ctx)

	recorder, stopClicks, err := a.clickRecorder()
	if err != nil {
		return err
	}
	defer stopClicks()

	router := controllers.SetupRouter(controllers.RouterParams{
		LinkService: a.services.Links,
		UserService: a.services.Users,
		PingService: a.services.Ping,
		ClickRecord: recorder,
		Metrics:     a.metrics,
		Providers:   a.providers(),
		AppConf:     a.config,
		Logger:      a.Logger,
	})
	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- a.listen(server)
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		if errors.Is(serverErr, http.ErrServerClosed) {
			serverErr = nil
		} else {
			a.Logger.Error("server error", zap.Error(serverErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("server shutdown", zap.Error(err))
	}
	return serverErr
}

func (a *App) listen(server *http.Server) error {
	if !a.config.EnableHTTPS {
		return server.ListenAndServe() //nolint:wrapcheck
	}

	host, _, err := net.SplitHostPort(a.config.ServerAddress)
	if err != nil {
		host = ""
	}
	hosts := []string{host}
	if a.config.PublicURL != nil {
		hosts = append(hosts, a.config.PublicURL.Hostname())
	}
	pair := tlscert.New(a.config.TLSCertFile, a.config.TLSKeyFile, hosts...)
	created, err := pair.Ensure()
	if err != nil {
		return fmt.Errorf("prepare tls certificate: %w", err)
	}
	if created {
		a.Logger.Warn("self-signed certificate issued", zap.String("cert", pair.CertFile))
	}
	return server.ListenAndServeTLS(pair.CertFile, pair.KeyFile) //nolint:wrapcheck
}

// warmAllocator загружает выданные коды в фильтр аллокатора. Ошибка не фатальна:
// аллокатор продолжит сверяться с реестром.
func (a *App) warmAllocator(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, warmTimeout)
	defer cancel()
	if err := a.services.Allocator.Warm(warmCtx); err != nil {
		a.Logger.Warn("allocator warm-up failed", zap.Error(err))
	}
}

// clickRecorder выбирает способ записи переходов. Возвращаемая функция останавливает запись
// и дожидается уже принятых переходов.
func (a *App) clickRecorder() (services.ClickRecorder, func(), error) {
	links := a.services.Links
	logger := a.Logger.With(zap.String("component", "clicks"))
	switch a.config.ClickMode {
	case config.ClickModeInline:
		return services.NewInlineRecorder(links, logger), func() {}, nil

	case config.ClickModeNATS:
		conn, err := events.Connect(a.config.NatsURL)
		if err != nil {
			return nil, nil, err //nolint:wrapcheck
		}
		consumer := events.NewConsumer(conn, links, logger)
		if err = consumer.Start(context.Background()); err != nil {
			conn.Close()
			return nil, nil, err //nolint:wrapcheck
		}
		return events.NewPublisher(conn, logger), func() {
			if stopErr := consumer.Stop(); stopErr != nil {
				a.Logger.Error("click consumer stop", zap.Error(stopErr))
			}
			if drainErr := conn.Drain(); drainErr != nil && !errors.Is(drainErr, nats.ErrConnectionClosed) {
				a.Logger.Error("nats drain", zap.Error(drainErr))
			}
		}, nil

	default:
		worker := services.NewClickWorker(links, logger, a.config.ClickWorkers, a.config.ClickQueue)
		worker.Start(context.Background())
		return worker, func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := worker.Stop(ctx); err != nil {
				a.Logger.Error("click worker stop", zap.Error(err))
			}
		}, nil
	}
}

func (a *App) providers() []*controllers.OAuthProvider {
	var providers []*controllers.OAuthProvider
	if a.config.FacebookClientID != "" {
		providers = append(providers, controllers.NewFacebookProvider(
			a.config.FacebookClientID, a.config.FacebookClientSecret, a.config.PublicURL))
	}
	if a.config.GoogleClientID != "" {
		providers = append(providers, controllers.NewGoogleProvider(
			a.config.GoogleClientID, a.config.GoogleClientSecret, a.config.PublicURL))
	}
	return providers
}

func (a *App) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Error("close redis", zap.Error(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.Logger.Error("close storage", zap.Error(err))
		}
	}
	_ = a.Logger.Sync()
}

func whatIsDBStorageType(appConf *config.Config) db.StorageType {
	switch {
	case appConf.DatabaseDSN != "":
		return db.StorageTypePostgres
	case appConf.SQLitePath != "":
		return db.StorageTypeSQLite
	default:
		return db.StorageTypeInMemory
	}
}
