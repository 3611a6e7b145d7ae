package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/repositories/memstore"
	"github.com/tragikomedia/shortener/internal/repositories/sql"
)

// FactoryParams параметры сборки сервисов.
type FactoryParams struct {
	// Conn *db.SQLConnection или *db.MemoryStorage.
	Conn any
	// Registry внешний реестр кодов. Если nil, используется реестр хранилища ссылок.
	Registry CodeRegistry
	Observer Observer
	Logger   *zap.Logger
	// AllocatorOptions дополнительные настройки аллокатора.
	AllocatorOptions []AllocatorOption
}

type Services struct {
	Links     *LinkService
	Users     *UserService
	Ping      *PingService
	Allocator *Allocator
}

type repos struct {
	links    LinkRepository
	clicks   ClickRepository
	users    UserRepository
	registry CodeRegistry
	pinger   Pinger
}

// Factory собирает сервисы поверх соединения, созданного db.NewConnectionFactory.
func Factory(params FactoryParams) (*Services, error) {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	observer := params.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	var r repos
	switch conn := params.Conn.(type) {
	case *db.SQLConnection:
		r = repos{
			links:    sql.NewLinkRepo(conn.DB),
			clicks:   sql.NewClickRepo(conn.DB),
			users:    sql.NewUserRepo(conn.DB),
			registry: sql.NewCodeRegistry(conn.DB),
			pinger:   conn,
		}
	case *db.MemoryStorage:
		r = repos{
			links:    memstore.NewLinkRepo(conn),
			clicks:   memstore.NewClickRepo(conn),
			users:    memstore.NewUserRepo(conn),
			registry: memstore.NewCodeRegistry(conn),
			pinger:   conn,
		}
	case nil:
		return nil, errors.New("connection is nil")
	default:
		return nil, fmt.Errorf("unsupported connection type %T", conn)
	}

	ping := NewPingService(r.pinger)
	if params.Registry != nil {
		r.registry = params.Registry
		if p, ok := params.Registry.(Pinger); ok {
			ping.With("registry", p)
		}
	}

	allocOpts := append([]AllocatorOption{
		WithAllocatorObserver(observer),
		WithAllocatorLogger(logger),
	}, params.AllocatorOptions...)
	allocator := NewAllocator(r.registry, allocOpts...)

	return &Services{
		Links: NewLinkService(r.links, r.clicks, allocator,
			WithLinkObserver(observer),
			WithLinkLogger(logger),
		),
		Users:     NewUserService(r.users),
		Ping:      ping,
		Allocator: allocator,
	}, nil
}
