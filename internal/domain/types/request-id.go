package types

import "context"

// requestID is an unexported context key so other packages cannot collide
// with it.
type requestID struct{}

var requestIDKey = &requestID{}

func GetRequestIDKey() *requestID {
	return requestIDKey
}

// WithRequestIDContext stores the request id for handlers further down the
// chain.
func WithRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, GetRequestIDKey(), requestID)
}

// RequestIDFromContext returns the request id, or "" when none was set.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
