package auth

import (
	"context"

	"github.com/hrportal/leave-management/internal/user"
)

type ctxKey string

const contextUserKey ctxKey = "authUser"

// ContextWithUser stores the authenticated directory user on the context.
func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}

// UserFromContext returns the authenticated user placed by AuthMiddleware.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(contextUserKey).(*user.User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}
