// Package sessionlog provides a logging wrapper for zoofile.Session.
package sessionlog

import (
	"context"
	"time"

	"golang.org/x/exp/slog"

	"github.com/zoofs/zoofs/pkg/zoofile"
)

var _ zoofile.Session = &loggingSession{}

type loggingSession struct {
	// Wrapped is the underlying zoofile.Session implementation
	Wrapped zoofile.Session
	Logger  *slog.Logger
}

// New creates a wrapper around the provided session that logs all calls to `logger`
func New(wrapped zoofile.Session, logger *slog.Logger) zoofile.Session {
	return &loggingSession{
		Wrapped: wrapped,
		Logger:  logger,
	}
}

// logCall logs a store call with its attributes and error. Payloads are never
// logged, only their sizes.
func (l *loggingSession) logCall(operation string, path string, duration time.Duration, err error, attrs ...any) {
	attrs = append([]any{
		"operation", operation,
		"path", path,
		"duration_ms", duration.Milliseconds(),
	}, attrs...)

	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}

	l.Logger.Debug("SessionCall", attrs...)
}

func (l *loggingSession) Exists(ctx context.Context, path string) (bool, error) {
	start := time.Now()
	ok, err := l.Wrapped.Exists(ctx, path)
	l.logCall("Exists", path, time.Since(start), err, "exists", ok)
	return ok, err
}

func (l *loggingSession) Get(ctx context.Context, path string, maxBytes int) ([]byte, int, error) {
	start := time.Now()
	data, length, err := l.Wrapped.Get(ctx, path, maxBytes)
	l.logCall("Get", path, time.Since(start), err, "max_bytes", maxBytes, "read", len(data), "length", length)
	return data, length, err
}

func (l *loggingSession) GetW(ctx context.Context, path string, maxBytes int) ([]byte, int, <-chan zoofile.Event, error) {
	start := time.Now()
	data, length, events, err := l.Wrapped.GetW(ctx, path, maxBytes)
	l.logCall("GetW", path, time.Since(start), err, "max_bytes", maxBytes, "read", len(data), "length", length)
	return data, length, events, err
}

func (l *loggingSession) Set(ctx context.Context, path string, data []byte) error {
	start := time.Now()
	err := l.Wrapped.Set(ctx, path, data)
	l.logCall("Set", path, time.Since(start), err, "size", len(data))
	return err
}

func (l *loggingSession) Create(ctx context.Context, path string) error {
	start := time.Now()
	err := l.Wrapped.Create(ctx, path)
	l.logCall("Create", path, time.Since(start), err)
	return err
}

func (l *loggingSession) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := l.Wrapped.Delete(ctx, path)
	l.logCall("Delete", path, time.Since(start), err)
	return err
}

func (l *loggingSession) Children(ctx context.Context, path string) ([]string, error) {
	start := time.Now()
	children, err := l.Wrapped.Children(ctx, path)
	l.logCall("Children", path, time.Since(start), err, "children", len(children))
	return children, err
}
