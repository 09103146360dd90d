package http

import (
	"context"
	"io"
)

// NewContext returns a context carrying the writer that request handlers
// log errors to.
func NewContext(ctx context.Context, logOutput io.Writer) context.Context {
	return context.WithValue(ctx, logOutputKey, logOutput)
}

// FromContext returns the log writer stored in ctx, or nil if none is set.
func FromContext(ctx context.Context) io.Writer {
	w, _ := ctx.Value(logOutputKey).(io.Writer)
	return w
}

// contextKey is an unexported type for preventing context key collisions.
type contextKey int

// logOutputKey is the key the log writer is stored under.
const logOutputKey contextKey = 0
