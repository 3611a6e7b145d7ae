// Package memstore предоставляет реализацию репозиториев ссылок, кликов, пользователей и реестра кодов
// для in-memory хранилища.
//
// Все методы репозиториев преобразуют внутренние ошибки хранилища в общие ошибки уровня репозитория
// с помощью convertErrorType:
//   - memory.ErrDuplicateKey -> repositories.ErrDuplicateKey
//   - memory.ErrNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
//
// Отмена и истечение контекста возвращаются без преобразования. Исходная ошибка
// всегда остается в цепочке и доступна через errors.Is.
package memstore
