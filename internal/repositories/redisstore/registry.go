// Package redisstore хранит реестр выданных коротких кодов в множестве Redis.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultCodesKey ключ множества выданных кодов.
const DefaultCodesKey = "shortener:codes"

// CodeRegistry реестр кодов на SADD/SISMEMBER. SADD атомарен, поэтому Reserve не подвержен гонке.
type CodeRegistry struct {
	rdb redis.UniversalClient
	key string
}

func NewCodeRegistry(rdb redis.UniversalClient, key string) *CodeRegistry {
	if key == "" {
		key = DefaultCodesKey
	}
	return &CodeRegistry{rdb: rdb, key: key}
}

func (r *CodeRegistry) Exists(ctx context.Context, code string) (bool, error) {
	ok, err := r.rdb.SIsMember(ctx, r.key, code).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check code %s: %w", code, err)
	}
	return ok, nil
}

func (r *CodeRegistry) Reserve(ctx context.Context, code string) (bool, error) {
	added, err := r.rdb.SAdd(ctx, r.key, code).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve code %s: %w", code, err)
	}
	return added == 1, nil
}

func (r *CodeRegistry) Codes(ctx context.Context) ([]string, error) {
	codes, err := r.rdb.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list codes: %w", err)
	}
	return codes, nil
}

// Ping проверяет соединение с Redis.
func (r *CodeRegistry) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
