package memory

import "github.com/pkg/errors"

var (
	ErrNotFound     = errors.New("memory: key not found")
	ErrDuplicateKey = errors.New("memory: key already exists")
	// ErrCorrupted значение по ключу не декодируется в запрошенный тип.
	ErrCorrupted = errors.New("memory: stored value has unexpected shape")
)
