package middleware

import (
	"context"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
)

type contextKey string

const (
	ctxUser      contextKey = "current_user"
	ctxUserID    contextKey = "user_id"
	ctxSessionID contextKey = "session_id"
)

// UserFromContext returns the resolved account attached by the auth middleware.
func UserFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxUser).(*models.User); ok {
		return v
	}
	return nil
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithUser injects the resolved account into the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUser, user)
	if user != nil {
		ctx = context.WithValue(ctx, ctxUserID, user.ID.String())
	}
	return ctx
}

// WithSessionID injects the access-token session id into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
