package libtracker

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

var ContextKeyRequestID = contextKey("request_id")

// WithNewRequestID stamps a fresh request ID into ctx and returns it.
// Call this at the entry-point of every tool call so upstream requests and
// log lines of the same call can be correlated.
func WithNewRequestID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, ContextKeyRequestID, id), id
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}
