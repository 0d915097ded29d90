package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	authorIDKey  contextKey = "authorID"
	requestIDKey contextKey = "requestID"
)

// AuthorIDFrom retrieves the authenticated author id from the request context.
func AuthorIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(authorIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithAuthor returns a new context carrying the caller identity.
func ContextWithAuthor(ctx context.Context, authorID string) context.Context {
	return context.WithValue(ctx, authorIDKey, authorID)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context with the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
