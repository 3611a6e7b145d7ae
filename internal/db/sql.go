package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tragikomedia/shortener/internal/models"
)

// SQLConnection подключение к SQL базе через gorm.
type SQLConnection struct {
	DB      *gorm.DB
	pinger  func(ctx context.Context) error
	closeFn func()
}

// Ping проверяет доступность базы данных.
func (c *SQLConnection) Ping(ctx context.Context) error {
	if c.pinger != nil {
		return c.pinger(ctx)
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		return fmt.Errorf("ping sql db: %w", pingErr)
	}
	return nil
}

// Close закрывает подключение.
func (c *SQLConnection) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	closeErr := sqlDB.Close()
	if c.closeFn != nil {
		c.closeFn()
	}
	if closeErr != nil {
		return fmt.Errorf("close sql db: %w", closeErr)
	}
	return nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Link{},
		&models.Click{},
		&models.User{},
		&models.ShortCode{},
	); err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}
