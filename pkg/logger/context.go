package logger

import (
	"context"
	"sync"
)

// ContextKey is the type of context keys whose values are copied into log
// entries written through the *Ctx methods.
type ContextKey string

const (
	RequestIDKey ContextKey = "requestID"
	OperationKey ContextKey = "operation"
)

var (
	registryMu         sync.RWMutex
	contextKeyRegistry = map[any]string{
		RequestIDKey: "request_id",
		OperationKey: "operation",
	}
)

// RegisterContextKey makes ctx.Value(ctxKey) appear as logField in entries
// logged with a context.
func RegisterContextKey(ctxKey any, logField string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	contextKeyRegistry[ctxKey] = logField
}

func UnregisterContextKey(ctxKey any) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(contextKeyRegistry, ctxKey)
}

// WithRequestID stores the outbound request id on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithOperation stores the API operation name on ctx.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, OperationKey, op)
}

// RequestID returns the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func withContext(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	fields := make([]any, 0, len(contextKeyRegistry)*2)
	for key, fieldName := range contextKeyRegistry {
		if val := ctx.Value(key); val != nil {
			fields = append(fields, fieldName, val)
		}
	}
	return fields
}
