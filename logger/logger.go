package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
)

// LogLevel defines the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelNone  LogLevel = "none"
)

var (
	currentLogTag string
	logTagMutex   sync.RWMutex
)

// Logger is the interface for logging during wrapper generation and inspection
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	SetLevel(level LogLevel)
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	case LogLevelNone:
		// high enough to suppress everything
		return slog.Level(1000)
	default:
		return slog.LevelInfo
	}
}

// simpleHandler is a simple log handler that outputs standard log format
type simpleHandler struct {
	mu    sync.RWMutex
	level slog.Level
	w     io.Writer
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return level >= h.level
}

func (h *simpleHandler) Handle(ctx context.Context, r slog.Record) error {
	timeStr := r.Time.Format("2006/01/02 15:04:05")
	level := r.Level.String()

	// Get tag from global variable
	logTagMutex.RLock()
	tag := currentLogTag
	logTagMutex.RUnlock()

	if tag == "" {
		tag = "CORE"
	}

	_, err := fmt.Fprintf(h.w, "%s [%s] %s %s\n", timeStr, tag, level, r.Message)
	return err
}

func (h *simpleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *simpleHandler) setLevel(level slog.Level) {
	h.mu.Lock()
	h.level = level
	h.mu.Unlock()
}

// SetupLogger configures the global logger based on the log level
func SetupLogger(level LogLevel) {
	handler := &simpleHandler{
		level: slogLevel(level),
		w:     os.Stderr,
	}

	slog.SetDefault(slog.New(handler))

	// Also set the standard log package to use the same output
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
}

// SetLogTag sets the current log tag for all subsequent logs
func SetLogTag(tag string) {
	logTagMutex.Lock()
	currentLogTag = tag
	logTagMutex.Unlock()
}

// GetLogTag returns the current log tag
func GetLogTag() string {
	logTagMutex.RLock()
	defer logTagMutex.RUnlock()
	return currentLogTag
}

// DefaultLogger implements Logger using slog with its own handler
type DefaultLogger struct {
	handler *simpleHandler
	logger  *slog.Logger
}

func NewDefaultLogger() Logger {
	handler := &simpleHandler{
		level: slog.LevelInfo,
		w:     os.Stderr,
	}
	return &DefaultLogger{
		handler: handler,
		logger:  slog.New(handler),
	}
}

func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.handler.setLevel(slogLevel(level))
}

func (l *DefaultLogger) Debug(msg string) {
	l.logger.Debug(msg)
}

func (l *DefaultLogger) Info(msg string) {
	l.logger.Info(msg)
}

func (l *DefaultLogger) Warn(msg string) {
	l.logger.Warn(msg)
}

func (l *DefaultLogger) Error(msg string) {
	l.logger.Error(msg)
}
