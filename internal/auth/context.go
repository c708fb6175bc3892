package auth

import (
	"context"

	"github.com/stormarket/stormarket/internal/common"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// WithUserID returns a context carrying the authenticated user identifier.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user identifier or returns
// common.ErrNotAuthenticated when the context carries none.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", common.ErrNotAuthenticated
	}
	return userID, nil
}
