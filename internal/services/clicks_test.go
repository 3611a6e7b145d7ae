package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClickHandler struct {
	mu     sync.Mutex
	events []ClickEvent
	err    error
}

func (h *fakeClickHandler) RecordClick(_ context.Context, event ClickEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *fakeClickHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func TestInlineRecorder_LogsFailures(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := &fakeClickHandler{err: errors.New("boom")}
	r := NewInlineRecorder(handler, zap.New(core))

	r.Record(context.Background(), ClickEvent{Code: "aB3dE9z"})

	assert.Equal(t, 1, handler.count())
	assert.Equal(t, 1, logs.FilterMessage("click record failed").Len())
}

func TestClickWorker_DrainsOnStop(t *testing.T) {
	handler := &fakeClickHandler{}
	w := NewClickWorker(handler, zap.NewNop(), 4, 100)
	w.Start(context.Background())

	for range 50 {
		w.Record(context.Background(), ClickEvent{Code: "aB3dE9z", Time: time.Now()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Stop(ctx))
	assert.Equal(t, 50, handler.count())

	// после остановки переходы отбрасываются
	w.Record(context.Background(), ClickEvent{Code: "aB3dE9z"})
	assert.Equal(t, 50, handler.count())
	require.NoError(t, w.Stop(ctx))
}

func TestClickWorker_DropsWhenQueueFull(t *testing.T) {
	handler := &fakeClickHandler{}
	core, logs := observer.New(zap.WarnLevel)
	// без Start очередь никто не читает
	w := NewClickWorker(handler, zap.New(core), 1, 1)

	w.Record(context.Background(), ClickEvent{Code: "aB3dE9z"})
	w.Record(context.Background(), ClickEvent{Code: "aB3dE9z"})

	assert.Equal(t, 1, logs.FilterMessage("click dropped").Len())
}

func TestClickWorker_RequestCancelDoesNotAbortWrite(t *testing.T) {
	handler := &fakeClickHandler{}
	w := NewClickWorker(handler, zap.NewNop(), 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	w.Record(ctx, ClickEvent{Code: "aB3dE9z"})
	cancel()

	require.NoError(t, w.Stop(context.Background()))
	assert.Equal(t, 1, handler.count())
}
