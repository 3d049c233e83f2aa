package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Saved maze.bin (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports pipeline, cache and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

func (h *logHooks) OnGenerateStart(_ context.Context, width, height int) {
	h.logger.Debug("generate start", "width", width, "height", height)
}

func (h *logHooks) OnGenerateComplete(_ context.Context, width, height, steps int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "width", width, "height", height, "error", err)
		return
	}
	h.logger.Debug("generate done", "width", width, "height", height, "steps", steps, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, kind string) {
	h.logger.Debug("render start", "kind", kind)
}

func (h *logHooks) OnRenderComplete(_ context.Context, kind string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "kind", kind, "error", err)
		return
	}
	h.logger.Debug("render done", "kind", kind, "bytes", size, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
