package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ClickHandler сохраняет переход.
type ClickHandler interface {
	RecordClick(ctx context.Context, event ClickEvent) error
}

// ClickRecorder принимает переход к записи. Запись может быть отложенной:
// ошибки записи не должны влиять на редирект.
type ClickRecorder interface {
	Record(ctx context.Context, event ClickEvent)
}

var (
	ErrWorkerStopped = errors.New("[service]: click worker stopped")
	ErrQueueFull     = errors.New("[service]: click queue is full")
)

// InlineRecorder записывает переход синхронно.
type InlineRecorder struct {
	handler ClickHandler
	logger  *zap.Logger
}

func NewInlineRecorder(handler ClickHandler, logger *zap.Logger) *InlineRecorder {
	return &InlineRecorder{handler: handler, logger: logger}
}

func (r *InlineRecorder) Record(ctx context.Context, event ClickEvent) {
	if err := r.handler.RecordClick(ctx, event); err != nil {
		r.logger.Error("click record failed", zap.String("code", event.Code), zap.Error(err))
	}
}

// ClickWorker записывает переходы в фоне пулом горутин.
type ClickWorker struct {
	handler ClickHandler
	logger  *zap.Logger
	queue   chan ClickEvent
	workers int

	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
}

// NewClickWorker создает пул из workers горутин с очередью queueSize.
func NewClickWorker(handler ClickHandler, logger *zap.Logger, workers, queueSize int) *ClickWorker {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &ClickWorker{
		handler: handler,
		logger:  logger,
		queue:   make(chan ClickEvent, queueSize),
		workers: workers,
	}
}

// Start запускает горутины. Контекст передается в обработчик без отмены.
func (w *ClickWorker) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for event := range w.queue {
				if err := w.handler.RecordClick(ctx, event); err != nil {
					w.logger.Error("click record failed", zap.String("code", event.Code), zap.Error(err))
				}
			}
		}()
	}
}

// Record ставит переход в очередь. При заполненной очереди переход отбрасывается.
func (w *ClickWorker) Record(_ context.Context, event ClickEvent) {
	if err := w.enqueue(event); err != nil {
		w.logger.Warn("click dropped", zap.String("code", event.Code), zap.Error(err))
	}
}

func (w *ClickWorker) enqueue(event ClickEvent) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrWorkerStopped
	}
	select {
	case w.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop закрывает очередь и дожидается записи оставшихся переходов.
func (w *ClickWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
