package log

import (
	"context"
)

type ContextKey string

const (
	ContextKeyTraceID ContextKey = "logContextKeyTraceID"
	ContextKeyRunID   ContextKey = "logContextKeyRunID"
)

// PutTraceID attaches the trace id of a single call to the context
func PutTraceID(ctx context.Context, traceID int64) context.Context {
	return context.WithValue(ctx, ContextKeyTraceID, traceID)
}

// GetTraceID returns the trace id stored in the context or -1
func GetTraceID(ctx context.Context) int64 {
	traceID, ok := ctx.Value(ContextKeyTraceID).(int64)
	if !ok {
		return -1
	}

	return traceID
}

// PutRunID attaches the identifier of a load generation run
func PutRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// GetRunID returns the run id stored in the context, or an empty
// string if there is none
func GetRunID(ctx context.Context) string {
	runID, ok := ctx.Value(ContextKeyRunID).(string)
	if !ok {
		return ""
	}

	return runID
}
