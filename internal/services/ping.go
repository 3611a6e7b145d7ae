package services

import (
	"context"
	"errors"
	"fmt"
)

// Pinger зависимость, доступность которой проверяет /ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

type namedPinger struct {
	name string
	Pinger
}

// PingService проверяет хранилище ссылок и подключенные к нему внешние зависимости,
// например реестр кодов в Redis.
type PingService struct {
	deps []namedPinger
}

func NewPingService(storage Pinger) *PingService {
	return &PingService{deps: []namedPinger{{name: "storage", Pinger: storage}}}
}

// With добавляет зависимость к проверке.
func (s *PingService) With(name string, p Pinger) *PingService {
	s.deps = append(s.deps, namedPinger{name: name, Pinger: p})
	return s
}

// CheckConnection опрашивает все зависимости и возвращает объединенную ошибку недоступных.
func (s *PingService) CheckConnection(ctx context.Context) error {
	var errs []error
	for _, dep := range s.deps {
		if err := dep.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dep.name, err))
		}
	}
	return errors.Join(errs...)
}
