package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/repositories/memstore"
	"github.com/tragikomedia/shortener/internal/services/mocks"
)

// scriptedRand возвращает значения из seq по кругу.
func scriptedRand(seq ...int) func(int) int {
	var i int
	return func(n int) int {
		v := seq[i%len(seq)] % n
		i++
		return v
	}
}

func hamming(a, b string) int {
	var d int
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

func TestAllocator_Allocate(t *testing.T) {
	errRegistry := errors.New("registry down")

	tests := []struct {
		name    string
		setup   func(r *mocks.MockCodeRegistry)
		want    string
		wantErr error
	}{
		{
			name: "fresh code",
			setup: func(r *mocks.MockCodeRegistry) {
				r.EXPECT().Exists(gomock.Any(), "0000000").Return(false, nil)
				r.EXPECT().Reserve(gomock.Any(), "0000000").Return(true, nil)
			},
			want: "0000000",
		},
		{
			name: "collision mutates one position",
			setup: func(r *mocks.MockCodeRegistry) {
				gomock.InOrder(
					r.EXPECT().Exists(gomock.Any(), "0000000").Return(true, nil),
					r.EXPECT().Exists(gomock.Any(), "000a000").Return(false, nil),
					r.EXPECT().Reserve(gomock.Any(), "000a000").Return(true, nil),
				)
			},
			want: "000a000",
		},
		{
			name: "concurrent writer wins the reservation",
			setup: func(r *mocks.MockCodeRegistry) {
				gomock.InOrder(
					r.EXPECT().Exists(gomock.Any(), "0000000").Return(false, nil),
					r.EXPECT().Reserve(gomock.Any(), "0000000").Return(false, nil),
					r.EXPECT().Exists(gomock.Any(), "000a000").Return(false, nil),
					r.EXPECT().Reserve(gomock.Any(), "000a000").Return(true, nil),
				)
			},
			want: "000a000",
		},
		{
			name: "reserve failure",
			setup: func(r *mocks.MockCodeRegistry) {
				r.EXPECT().Exists(gomock.Any(), "0000000").Return(false, nil)
				r.EXPECT().Reserve(gomock.Any(), "0000000").Return(false, errRegistry)
			},
			wantErr: ErrRegistryWrite,
		},
		{
			name: "registry read failure",
			setup: func(r *mocks.MockCodeRegistry) {
				r.EXPECT().Exists(gomock.Any(), "0000000").Return(false, errRegistry)
			},
			wantErr: ErrAllocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			registry := mocks.NewMockCodeRegistry(ctrl)
			tt.setup(registry)

			// 7 нулей для первого кода, затем позиция 3 и символ 'a'
			a := NewAllocator(registry,
				WithBloomFilter(0, 0),
				WithRandSource(scriptedRand(0, 0, 0, 0, 0, 0, 0, 3, 10)),
			)

			code, err := a.Allocate(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
			assert.LessOrEqual(t, hamming("0000000", code), 1)
		})
	}
}

func TestAllocator_AttemptsExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockCodeRegistry(ctrl)
	registry.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil).Times(5)

	a := NewAllocator(registry, WithBloomFilter(0, 0), WithMaxAttempts(5))

	_, err := a.Allocate(context.Background())
	require.ErrorIs(t, err, ErrAllocation)
}

func TestAllocator_BloomSkipsRegistryRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockCodeRegistry(ctrl)
	// Exists не ожидается: фильтр пуст, код заведомо новый
	registry.EXPECT().Reserve(gomock.Any(), "0000000").Return(true, nil)

	a := NewAllocator(registry, WithRandSource(scriptedRand(0)))

	code, err := a.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0000000", code)
}

func TestAllocator_Warm(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockCodeRegistry(ctrl)

	gomock.InOrder(
		registry.EXPECT().Codes(gomock.Any()).Return([]string{"0000000"}, nil),
		registry.EXPECT().Exists(gomock.Any(), "0000000").Return(true, nil),
		registry.EXPECT().Reserve(gomock.Any(), "000a000").Return(true, nil),
	)

	a := NewAllocator(registry, WithRandSource(scriptedRand(0, 0, 0, 0, 0, 0, 0, 3, 10)))
	require.NoError(t, a.Warm(context.Background()))

	code, err := a.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "000a000", code)
}

func TestAllocator_WarmGivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockCodeRegistry(ctrl)
	registry.EXPECT().Codes(gomock.Any()).Return(nil, errors.New("boom")).Times(warmAttempts)

	a := NewAllocator(registry)
	assert.Error(t, a.Warm(context.Background()))
}

func TestAllocator_ConcurrentUniqueness(t *testing.T) {
	registry := memstore.NewCodeRegistry(db.NewMemStorage())
	// три символа вместо 62 провоцируют коллизии
	a := NewAllocator(registry, WithRandSource(narrowRand()))

	const n = 300
	codes := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := a.Allocate(context.Background())
			assert.NoError(t, err)
			codes[i] = code
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, c := range codes {
		assert.True(t, ValidCode(c), c)
		_, dup := seen[c]
		assert.False(t, dup, "duplicate code %s", c)
		seen[c] = struct{}{}
	}

	stored, err := registry.Codes(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, n)
}

// narrowRand потокобезопасный источник, выбирающий символы только из первых трех.
func narrowRand() func(int) int {
	var mu sync.Mutex
	r := rand.New(rand.NewPCG(1, 2))
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		if n == models.CodeLength {
			return r.IntN(n)
		}
		return r.IntN(3)
	}
}
