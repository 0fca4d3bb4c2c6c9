package observability

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap and attaches the fields stored on the context to every entry.
type Logger struct {
	zapLogger *zap.Logger
}

// NewLogger builds a production JSON logger. LOG_LEVEL (debug, info, warn, error)
// overrides the default info level.
func NewLogger() *Logger {
	cfg := zap.NewProductionConfig()
	if level, err := zapcore.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	zapLogger, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return NewLoggerFromZap(zapLogger)
}

// NewLoggerFromZap wraps an existing zap logger, e.g. an observer core in tests.
func NewLoggerFromZap(zapLogger *zap.Logger) *Logger {
	return &Logger{zapLogger: zapLogger.WithOptions(zap.AddCallerSkip(1))}
}

func (l *Logger) log(ctx context.Context, level zapcore.Level, msg string, extra ...zapcore.Field) {
	ce := l.zapLogger.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(append(zapFields(ctx), extra...)...)
}

func (l *Logger) Info(ctx context.Context, msg string) {
	l.log(ctx, zapcore.InfoLevel, msg)
}

// InfoWithError logs an expected, recoverable error at info level.
func (l *Logger) InfoWithError(ctx context.Context, msg string, err error) {
	l.log(ctx, zapcore.InfoLevel, msg, zap.Error(err))
}

func (l *Logger) Error(ctx context.Context, msg string, err error) {
	l.log(ctx, zapcore.ErrorLevel, msg, zap.Error(err))
}

func (l *Logger) Warn(ctx context.Context, msg string) {
	l.log(ctx, zapcore.WarnLevel, msg)
}

func (l *Logger) Debug(ctx context.Context, msg string) {
	l.log(ctx, zapcore.DebugLevel, msg)
}

// Fatal logs and exits the process.
func (l *Logger) Fatal(ctx context.Context, msg string, err error) {
	l.log(ctx, zapcore.FatalLevel, msg, zap.Error(err))
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
