package db

import (
	"context"

	"github.com/tragikomedia/shortener/internal/db/memory"
)

// MemoryStorage набор коллекций in-memory хранилища.
type MemoryStorage struct {
	Links  *memory.MStorage // ключ - короткий код
	Clicks *memory.MStorage // ключ - ID клика
	Users  *memory.MStorage // ключ - ID пользователя
	Codes  *memory.MStorage // реестр выданных кодов
}

func NewMemStorage() *MemoryStorage {
	return &MemoryStorage{
		Links:  memory.NewMemStorage(),
		Clicks: memory.NewMemStorage(),
		Users:  memory.NewMemStorage(),
		Codes:  memory.NewMemStorage(),
	}
}

// Ping in-memory хранилище доступно всегда.
func (m *MemoryStorage) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
