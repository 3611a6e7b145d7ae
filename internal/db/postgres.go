package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresConnection создает новый пул подключений к PostgreSQL.
//
// Параметры:
//   - ctx: контекст выполнения
//   - dsn: строка подключения к базе данных (Data Source Name)
//
// Возвращает:
//   - *pgxpool.Pool: пул подключений к PostgreSQL
//   - error: ошибка создания подключения
func NewPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("failed to parse config: %w", confErr)
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %w", poolErr)
	}
	return pool, nil
}

// NewPostgres поднимает пул pgx, оборачивает его в gorm и выполняет миграцию схемы.
func NewPostgres(ctx context.Context, dsn string) (*SQLConnection, error) {
	pool, err := NewPostgresConnection(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", pingErr)
	}

	gormDB, openErr := gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if openErr != nil {
		pool.Close()
		return nil, fmt.Errorf("open gorm over pgx pool: %w", openErr)
	}

	// пока не будем ничего усложнять, а сделаем миграцию прямо здесь
	if migrateErr := migrate(gormDB); migrateErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", migrateErr)
	}

	return &SQLConnection{
		DB:      gormDB,
		pinger:  pool.Ping,
		closeFn: pool.Close,
	}, nil
}
