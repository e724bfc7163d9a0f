package logger

import (
	"context"
	"sync"
)

// scopeKey is the context key under which the request scope is stored.
type scopeKey struct{}

// requestScope carries the correlation id and the key-value log fields
// accumulated over one request's lifetime. A pointer to it travels in the
// request context, so any code servicing the request can read the
// correlation id or append fields without the scope being threaded through
// every call signature. The scope is created at request entry and
// abandoned at request exit; it is never persisted.
//
// The mutex guards the fields map: handler logic is effectively
// sequential per request, but recovered panics and client-disconnect
// paths can touch the scope from the server's machinery.
type requestScope struct {
	requestID string

	mu     sync.Mutex
	fields map[string]any
}

// WithRequestScope returns a context carrying a fresh request scope bound
// to the given correlation id. Each request gets its own scope; concurrent
// requests never observe each other's fields.
func WithRequestScope(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, scopeKey{}, &requestScope{
		requestID: requestID,
		fields:    make(map[string]any),
	})
}

// RequestID returns the correlation id of the active request scope, or an
// empty string when the context carries none.
func RequestID(ctx context.Context) string {
	scope, ok := fromContext(ctx)
	if !ok {
		return ""
	}
	return scope.requestID
}

// AddField records a key-value pair on the active request scope for
// inclusion in the canonical log line. Fields accumulate over the
// request; the last write wins per key. A context without a scope makes
// this a no-op, so library code can call it unconditionally.
func AddField(ctx context.Context, key string, value any) {
	scope, ok := fromContext(ctx)
	if !ok {
		return
	}

	scope.mu.Lock()
	defer scope.mu.Unlock()
	scope.fields[key] = value
}

// Fields returns a snapshot of the fields accumulated on the active
// request scope. The snapshot is safe to read after the request ends.
func Fields(ctx context.Context) map[string]any {
	scope, ok := fromContext(ctx)
	if !ok {
		return nil
	}

	scope.mu.Lock()
	defer scope.mu.Unlock()

	fields := make(map[string]any, len(scope.fields))
	for k, v := range scope.fields {
		fields[k] = v
	}
	return fields
}

func fromContext(ctx context.Context) (*requestScope, bool) {
	if ctx == nil {
		return nil, false
	}
	scope, ok := ctx.Value(scopeKey{}).(*requestScope)
	return scope, ok && scope != nil
}
