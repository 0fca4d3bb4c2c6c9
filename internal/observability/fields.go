package observability

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a key-value pair carried on the request context and attached to every log line.
type Field struct {
	Key   string
	Value interface{}
}

type ObservabilityContextKey string

const observabilityKey ObservabilityContextKey = "observability_fields"

// WithFields returns a context carrying the parent's fields plus the given ones.
// The parent's slice is never appended to in place.
func WithFields(ctx context.Context, fields ...Field) context.Context {
	existing := getObservabilityFields(ctx)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, observabilityKey, merged)
}

func getObservabilityFields(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	if fields, ok := ctx.Value(observabilityKey).([]Field); ok {
		return fields
	}
	return nil
}

// zapFields converts context fields to zap fields; later keys win.
func zapFields(ctx context.Context) []zapcore.Field {
	fields := getObservabilityFields(ctx)
	seen := make(map[string]int, len(fields))
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if i, ok := seen[f.Key]; ok {
			out[i] = zap.Any(f.Key, f.Value)
			continue
		}
		seen[f.Key] = len(out)
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
