package auth

import (
	"context"

	"github.com/goliatone/go-router"
)

var sessionCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// WithSession sets the Session in the given context
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, session)
}

// SessionFromContext finds the session loaded for the request
func SessionFromContext(ctx context.Context) (Session, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(Session)
	return raw, ok && raw != nil
}

// UserIDFromContext is a shortcut for the loaded session user id
func UserIDFromContext(ctx context.Context) (string, bool) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return session.UserID(), true
}

// GetRouterSession reads the session stored under key by LoadSession
func GetRouterSession(c router.Context, key string) (Session, bool) {
	if key == "" {
		key = SessionKey
	}
	session, ok := c.Get(key, nil).(Session)
	return session, ok && session != nil
}
