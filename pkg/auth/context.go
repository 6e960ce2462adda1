package auth

import (
	"context"

	pkgerrors "conceptcraft-backend/pkg/errors"
)

type contextKey string

const userContextKey contextKey = "user_context"

// UserContext is the authenticated identity attached to each request
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

// SetUserInContext attaches the user context to a request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user context set by the auth middleware
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, pkgerrors.NewUnauthorizedError("no authenticated user in request context")
	}
	return user, nil
}

// HasRole reports whether the user holds the given role
func (u *UserContext) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
