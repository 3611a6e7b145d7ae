package sql

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/tragikomedia/shortener/internal/repositories"
)

// convertErrorType переводит ошибки gorm в ошибки пакета repositories. Дубликат ключа
// распознается при TranslateError: true в настройках соединения.
func convertErrorType(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", repositories.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", repositories.ErrDuplicateKey, err)
	default:
		return fmt.Errorf("%w: %w", repositories.ErrUnknown, err)
	}
}
