package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	viewIDKey    contextKey = "view_id"
)

// WithRequestID adds an API request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithViewID adds the ID of the dashboard view instance to the context.
func WithViewID(ctx context.Context, viewID string) context.Context {
	return context.WithValue(ctx, viewIDKey, viewID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetViewID retrieves the view ID from the context.
// Returns empty string if not present.
func GetViewID(ctx context.Context) string {
	if id, ok := ctx.Value(viewIDKey).(string); ok {
		return id
	}
	return ""
}
