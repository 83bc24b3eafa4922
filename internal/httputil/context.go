package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	requestIDKey contextKey = "requestID"
	previewKey   contextKey = "preview"
)

// WithRequestID adds the request id to the request context
func WithRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, id)
	return r.WithContext(ctx)
}

// GetRequestID retrieves the request id from context, returns empty string if not found
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// WithPreview marks the request as an authorized draft-preview request
func WithPreview(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), previewKey, true)
	return r.WithContext(ctx)
}

// IsPreview reports whether the request carries verified preview credentials
func IsPreview(r *http.Request) bool {
	ok, _ := r.Context().Value(previewKey).(bool)
	return ok
}
