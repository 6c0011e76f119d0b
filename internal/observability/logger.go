package observability

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
)

var (
	mu sync.RWMutex
	// basic global logger, JSON to stderr so it stays out of the chat REPL.
	logger = newLogger(zapcore.InfoLevel)
)

func newConfig(level zapcore.Level) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}

func newLogger(level zapcore.Level) *zap.SugaredLogger {
	l, err := newConfig(level).Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Configure replaces the global logger with one at the given level ("debug", "info", ...).
func Configure(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	SetLogger(newLogger(lvl))
	return nil
}

// SetLogger swaps the global logger. Tests use zap.NewNop().Sugar().
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func Logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *zap.SugaredLogger {
	return Logger().With(kv...)
}

// WithRequestID stores a request_id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// LoggerFromContext adds request_id if present.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	reqID, _ := ctx.Value(ctxKeyRequestID).(string)
	if reqID == "" {
		return Logger()
	}
	return Logger().With("request_id", reqID)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger().Sync()
}
