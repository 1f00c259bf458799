package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herbal/pkg/utils/async"
)

// safeBuffer is a thread-safe buffer for concurrent logging
type safeBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (sb *safeBuffer) Write(p []byte) (int, error) {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.Write(p)
}

func (sb *safeBuffer) String() string {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.String()
}

// syncHandler is a slog.Handler that signals when a log is written
type syncHandler struct {
	handler slog.Handler
	done    chan struct{}
}

func newSyncHandler(buf *safeBuffer) *syncHandler {
	return &syncHandler{
		handler: slog.NewTextHandler(buf, &slog.HandlerOptions{
			Level: slog.LevelError,
		}),
		done: make(chan struct{}, 1),
	}
}

func (h *syncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *syncHandler) Handle(ctx context.Context, r slog.Record) error {
	err := h.handler.Handle(ctx, r)
	select {
	case h.done <- struct{}{}:
	default:
	}
	return err
}

func (h *syncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &syncHandler{
		handler: h.handler.WithAttrs(attrs),
		done:    h.done,
	}
}

func (h *syncHandler) WithGroup(name string) slog.Handler {
	return &syncHandler{
		handler: h.handler.WithGroup(name),
		done:    h.done,
	}
}

func TestDispatch(t *testing.T) {
	t.Run("runs handler without blocking the caller", func(t *testing.T) {
		release := make(chan struct{})
		done := make(chan struct{})

		async.Dispatch(context.Background(), func(ctx context.Context) error {
			<-release
			close(done)
			return nil
		})

		// caller is free while the handler waits
		close(release)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("handler did not complete within timeout")
		}
	})

	t.Run("reports returned error through ctx logger", func(t *testing.T) {
		logBuf := &safeBuffer{}
		handler := newSyncHandler(logBuf)
		ctx := ctxlog.With(context.Background(), slog.New(handler))

		async.Dispatch(ctx, func(ctx context.Context) error {
			return errors.New("backend unreachable")
		})

		select {
		case <-handler.done:
		case <-time.After(time.Second):
			t.Fatal("log was not written within timeout")
		}

		out := logBuf.String()
		gt.True(t, strings.Contains(out, "error in async handler"))
		gt.True(t, strings.Contains(out, "backend unreachable"))
	})

	t.Run("recovers from panic with stack trace", func(t *testing.T) {
		logBuf := &safeBuffer{}
		handler := newSyncHandler(logBuf)
		ctx := ctxlog.With(context.Background(), slog.New(handler))

		async.Dispatch(ctx, func(ctx context.Context) error {
			panic("render exploded")
		})

		select {
		case <-handler.done:
		case <-time.After(time.Second):
			t.Fatal("log was not written within timeout")
		}

		out := logBuf.String()
		gt.True(t, strings.Contains(out, "panic in async handler"))
		gt.True(t, strings.Contains(out, "render exploded"))
		gt.True(t, strings.Contains(out, "goroutine"))
		gt.True(t, strings.Contains(out, "dispatch_test.go"))
	})

	t.Run("preserves logger but not cancellation", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&safeBuffer{}, nil))
		ctx, cancel := context.WithCancel(ctxlog.With(context.Background(), logger))

		var wg sync.WaitGroup
		wg.Add(1)

		async.Dispatch(ctx, func(newCtx context.Context) error {
			defer wg.Done()
			cancel()

			gt.Value(t, ctxlog.From(newCtx)).Equal(logger)
			gt.NoError(t, newCtx.Err())
			return nil
		})

		wg.Wait()
	})
}
