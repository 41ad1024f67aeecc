package inject

import "context"

// RequestID identifies one request handled through Middleware.
// The middleware binds it in request scope and stores it in the request
// context so code outside the container can read it too.
type RequestID string

type requestIDKey struct{}

// WithRequestID returns a context carrying id.
func WithRequestID(ctx context.Context, id RequestID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id carried by ctx, or the empty
// id when there is none.
func RequestIDFromContext(ctx context.Context) RequestID {
	id, _ := ctx.Value(requestIDKey{}).(RequestID)
	return id
}
