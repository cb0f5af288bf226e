package auth

import (
	"context"

	"inventra/internal/models"
)

type ctxKey string

const userKey ctxKey = "sessionUser"

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom returns the account resolved by the session middleware, or nil.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// Subject returns the caller's account id, or "" when unauthenticated.
func Subject(ctx context.Context) string {
	if u := UserFrom(ctx); u != nil {
		return u.ID
	}
	return ""
}
