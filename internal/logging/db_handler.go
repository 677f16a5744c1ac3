package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/goccy/go-json"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultBatchSize     = 50
	defaultFlushInterval = 5 * time.Second
)

// DBHandler batches ERROR+ records into system_logs.
type DBHandler struct {
	*sink
	attrs []slog.Attr
}

// sink is the buffer shared by a handler and everything derived from it with
// WithAttrs.
type sink struct {
	db        *gorm.DB
	batchSize int
	mu        sync.Mutex
	buffer    []models.SystemLog
	ticker    *time.Ticker
	done      chan struct{}
	stopped   chan struct{}
	stopOnce  sync.Once
}

type DBOption func(*sink)

func WithBatchSize(n int) DBOption {
	return func(s *sink) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func WithFlushInterval(d time.Duration) DBOption {
	return func(s *sink) {
		if d > 0 {
			s.ticker.Reset(d)
		}
	}
}

func NewDBHandler(db *gorm.DB, opts ...DBOption) *DBHandler {
	s := &sink{
		db:        db,
		batchSize: defaultBatchSize,
		ticker:    time.NewTicker(defaultFlushInterval),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.buffer = make([]models.SystemLog, 0, s.batchSize)
	go s.flushLoop()
	return &DBHandler{sink: s}
}

func (s *sink) flushLoop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *sink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, s.batchSize)
	s.mu.Unlock()

	// Warn stays below this handler's level so the failure is not re-buffered.
	if err := s.db.CreateInBatches(batch, s.batchSize).Error; err != nil {
		slog.Warn("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the flush loop to exit.
func (s *sink) Stop() {
	s.stopOnce.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
	<-s.stopped
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			id := a.Value.String()
			entry.UserID = &id
		case "method":
			entry.Method = a.Value.String()
		case "path":
			entry.Path = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, entry)
	full := len(h.buffer) >= h.batchSize
	h.mu.Unlock()

	if full {
		go h.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{sink: h.sink, attrs: merged}
}

// WithGroup is a no-op: system_logs columns are flat.
func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}
