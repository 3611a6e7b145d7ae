package memstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/tragikomedia/shortener/internal/db/memory"
	"github.com/tragikomedia/shortener/internal/repositories"
)

// convertErrorType переводит ошибки memory.MStorage в ошибки пакета repositories.
// Отмена контекста возвращается как есть.
func convertErrorType(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, memory.ErrNotFound):
		return fmt.Errorf("%w: %w", repositories.ErrNotFound, err)
	case errors.Is(err, memory.ErrDuplicateKey):
		return fmt.Errorf("%w: %w", repositories.ErrDuplicateKey, err)
	default:
		return fmt.Errorf("%w: %w", repositories.ErrUnknown, err)
	}
}
