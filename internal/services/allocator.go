package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"go.uber.org/zap"

	"github.com/tragikomedia/shortener/internal/models"
)

// CodeAlphabet символы короткого кода. Коды чувствительны к регистру.
const CodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	defaultMaxAttempts   = 1000
	defaultBloomCapacity = 1_000_000
	defaultBloomFPRate   = 0.001
	warmAttempts         = 3
	warmRetryDelay       = 200 * time.Millisecond
)

// Allocator генерирует уникальные короткие коды и регистрирует их в реестре.
//
// Кандидат при коллизии не генерируется заново: в нем заменяется один случайный символ.
// Bloom фильтр избавляет от чтения реестра для заведомо новых кодов, уникальность же
// гарантирует только атомарный CodeRegistry.Reserve.
type Allocator struct {
	registry    CodeRegistry
	length      int
	maxAttempts int
	intN        func(n int) int
	observer    Observer
	logger      *zap.Logger

	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// AllocatorOption настройка Allocator.
type AllocatorOption func(*Allocator)

// WithRandSource подменяет источник случайных чисел. intN должна возвращать число в [0, n).
func WithRandSource(intN func(n int) int) AllocatorOption {
	return func(a *Allocator) {
		a.intN = intN
	}
}

// WithMaxAttempts ограничивает число попыток подобрать свободный код.
func WithMaxAttempts(n int) AllocatorOption {
	return func(a *Allocator) {
		a.maxAttempts = n
	}
}

// WithBloomFilter задает параметры bloom фильтра. capacity == 0 отключает фильтр.
func WithBloomFilter(capacity uint, fpRate float64) AllocatorOption {
	return func(a *Allocator) {
		if capacity == 0 {
			a.filter = nil
			return
		}
		a.filter = bloom.NewWithEstimates(capacity, fpRate)
	}
}

func WithAllocatorObserver(o Observer) AllocatorOption {
	return func(a *Allocator) {
		a.observer = o
	}
}

func WithAllocatorLogger(l *zap.Logger) AllocatorOption {
	return func(a *Allocator) {
		a.logger = l
	}
}

// NewAllocator создает аллокатор кодов длины models.CodeLength поверх реестра.
func NewAllocator(registry CodeRegistry, opts ...AllocatorOption) *Allocator {
	a := &Allocator{
		registry:    registry,
		length:      models.CodeLength,
		maxAttempts: defaultMaxAttempts,
		intN:        rand.IntN,
		observer:    nopObserver{},
		logger:      zap.NewNop(),
		filter:      bloom.NewWithEstimates(defaultBloomCapacity, defaultBloomFPRate),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate возвращает новый уникальный код, уже записанный в реестр.
//
// Возможные ошибки:
//   - ErrRegistryWrite - реестр не смог сохранить код
//   - ErrAllocation - реестр недоступен на чтение либо исчерпан лимит попыток
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	candidate := a.generate()

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrAllocation, err)
		}

		known, err := a.isKnown(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrAllocation, err)
		}
		if known {
			a.observer.CodeCollision()
			candidate = a.mutate(candidate)
			continue
		}

		reserved, err := a.registry.Reserve(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrRegistryWrite, err)
		}
		a.remember(candidate)
		if !reserved {
			// код успел занять параллельный запрос
			a.observer.CodeCollision()
			candidate = a.mutate(candidate)
			continue
		}
		return candidate, nil
	}

	a.logger.Error("code allocation attempts exhausted", zap.Int("attempts", a.maxAttempts))
	return "", fmt.Errorf("%w: %d attempts exhausted", ErrAllocation, a.maxAttempts)
}

// Warm загружает выданные коды из реестра в bloom фильтр. Делает несколько попыток.
func (a *Allocator) Warm(ctx context.Context) error {
	if a.filter == nil {
		return nil
	}
	var lastErr error
	for attempt := 1; attempt <= warmAttempts; attempt++ {
		codes, err := a.registry.Codes(ctx)
		if err == nil {
			for _, c := range codes {
				a.remember(c)
			}
			a.logger.Debug("code registry loaded", zap.Int("codes", len(codes)))
			return nil
		}
		lastErr = err
		a.logger.Warn("code registry load failed", zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			return fmt.Errorf("warm code registry: %w", ctx.Err())
		case <-time.After(warmRetryDelay):
		}
	}
	return fmt.Errorf("warm code registry: %w", lastErr)
}

func (a *Allocator) isKnown(ctx context.Context, code string) (bool, error) {
	if a.filter != nil {
		a.mu.Lock()
		maybe := a.filter.TestString(code)
		a.mu.Unlock()
		if !maybe {
			return false, nil
		}
	}
	exists, err := a.registry.Exists(ctx, code)
	if err != nil {
		return false, fmt.Errorf("check code %s: %w", code, err)
	}
	return exists, nil
}

func (a *Allocator) remember(code string) {
	if a.filter == nil {
		return
	}
	a.mu.Lock()
	a.filter.AddString(code)
	a.mu.Unlock()
}

func (a *Allocator) generate() string {
	var b strings.Builder
	b.Grow(a.length)
	for range a.length {
		b.WriteByte(a.randomChar())
	}
	return b.String()
}

// mutate заменяет один случайно выбранный символ кода.
func (a *Allocator) mutate(code string) string {
	b := []byte(code)
	b[a.intN(len(b))] = a.randomChar()
	return string(b)
}

func (a *Allocator) randomChar() byte {
	return CodeAlphabet[a.intN(len(CodeAlphabet))]
}
