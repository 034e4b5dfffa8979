package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"nutritrack/internal/repository"
)

const (
	defaultFlushInterval = 5 * time.Second
	defaultFlushSize     = 50
)

// sinkCore is shared by a SinkHandler and every handler derived from it.
type sinkCore struct {
	repo      repository.SystemLogRepository
	flushSize int

	mu     sync.Mutex
	buffer []repository.SystemLog

	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// SinkHandler batches ERROR and above into a SystemLogRepository. Batches are
// written every five seconds or once fifty records are buffered.
type SinkHandler struct {
	core  *sinkCore
	attrs []slog.Attr
}

func NewSinkHandler(repo repository.SystemLogRepository) *SinkHandler {
	return newSinkHandler(repo, defaultFlushInterval, defaultFlushSize)
}

func newSinkHandler(repo repository.SystemLogRepository, interval time.Duration, size int) *SinkHandler {
	c := &sinkCore{
		repo:      repo,
		flushSize: size,
		buffer:    make([]repository.SystemLog, 0, size),
		ticker:    time.NewTicker(interval),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go c.flushLoop()
	return &SinkHandler{core: c}
}

func (c *sinkCore) flushLoop() {
	defer close(c.stopped)
	for {
		select {
		case <-c.ticker.C:
			c.flush()
		case <-c.done:
			c.flush()
			return
		}
	}
}

func (c *sinkCore) flush() {
	c.mu.Lock()
	if len(c.buffer) == 0 {
		c.mu.Unlock()
		return
	}
	batch := c.buffer
	c.buffer = make([]repository.SystemLog, 0, c.flushSize)
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.repo.InsertBatch(ctx, batch); err != nil {
		// WARN stays below the sink's threshold and cannot loop back here.
		slog.Warn("failed to flush system logs", "component", "logging", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the writer to finish.
func (h *SinkHandler) Stop() {
	h.core.stopOnce.Do(func() {
		h.core.ticker.Stop()
		close(h.core.done)
	})
	<-h.core.stopped
}

func (h *SinkHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *SinkHandler) Handle(_ context.Context, record slog.Record) error {
	entry := repository.SystemLog{
		ID:        uuid.NewString(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			entry.UserID = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Resolve().Any()
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	record.Attrs(collect)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = b
		}
	}

	c := h.core
	c.mu.Lock()
	c.buffer = append(c.buffer, entry)
	needFlush := len(c.buffer) >= c.flushSize
	c.mu.Unlock()

	if needFlush {
		go c.flush()
	}
	return nil
}

func (h *SinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SinkHandler{core: h.core, attrs: merged}
}

// WithGroup flattens groups; the sink stores attributes by their own key.
func (h *SinkHandler) WithGroup(string) slog.Handler {
	return h
}
