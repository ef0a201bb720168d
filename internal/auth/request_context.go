package auth

import (
	"context"
)

type contextKey string

var callerIDKey contextKey = "caller_id"

// SetCallerID stores the authenticated caller id in the request context.
// Only the id travels in the context; role and profile attributes are
// fetched fresh from the identity provider on every resolve.
func SetCallerID(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, callerIDKey, callerID)
}

// CallerID retrieves the authenticated caller id from the context.
// Returns "" when the request carries no valid session.
func CallerID(ctx context.Context) string {
	val := ctx.Value(callerIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
