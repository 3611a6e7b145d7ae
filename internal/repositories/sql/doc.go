// Package sql предоставляет реализацию репозиториев для SQL баз данных (PostgreSQL, SQLite) поверх gorm.
//
// Все методы репозиториев преобразуют ошибки gorm в общие ошибки уровня репозитория
// с помощью convertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
//
// Отмена и истечение контекста возвращаются без преобразования. Исходная ошибка
// всегда остается в цепочке и доступна через errors.Is.
package sql
