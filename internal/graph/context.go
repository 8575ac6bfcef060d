package graph

import (
	"context"

	"ec-service/internal/entity"
)

type ctxKey int

const userKey ctxKey = 0

// WithUser stores the authenticated user on the request context.
// Anonymous requests store nothing.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userKey).(*entity.User)
	return user
}
