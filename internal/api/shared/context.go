package shared

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the type of context keys owned by this package.
type ContextKey string

// TraceIDKey is the request context key holding the trace ID.
const TraceIDKey ContextKey = "traceID"

// TraceIDLength is the number of bytes in a trace ID (32 hex characters).
const TraceIDLength = 16

// SetTraceID returns a context carrying a fresh trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID from ctx, or "" if none was set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a random v4 UUID as 32 hex characters. If the
// random source fails it falls back to a clock-derived ID.
func generateTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Error("failed to generate random trace ID, using time-based fallback",
			slog.String("error", err.Error()))
		return fallbackTraceID(time.Now())
	}
	return hex.EncodeToString(id[:])
}

func fallbackTraceID(now time.Time) string {
	b := make([]byte, TraceIDLength)
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint64(b[8:], uint64(now.Unix())^uint64(now.Nanosecond()))
	return hex.EncodeToString(b)
}
