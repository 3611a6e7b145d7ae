// Package repositories содержит общие ошибки репозиториев.
// Реализации в memstore, sql и redisstore переводят в них ошибки своих бэкендов.
package repositories

import "errors"

var (
	// ErrNotFound записи нет. Сервисы отдают наружу свой services.ErrNotFound.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateKey нарушена уникальность: код ссылки, код в реестре или пара провайдер/внешний ID.
	ErrDuplicateKey = errors.New("repository: duplicate key")
	// ErrUnknown прочие сбои бэкенда. Исходная ошибка остается в цепочке.
	ErrUnknown = errors.New("repository: backend failure")
)
