// Package session carries the authenticated identity and its resolved role through a request.
package session

import (
	"context"

	"locally/shared/constant"
)

type Session struct {
	UserID  string
	Email   string
	Role    string
	TokenID string
}

// Provisioned reports whether the user holds a role.
func (s Session) Provisioned() bool {
	return s.Role != constant.RoleNone
}

// Is reports whether the session holds one of roles.
func (s Session) Is(roles ...string) bool {
	for _, role := range roles {
		if role != constant.RoleNone && s.Role == role {
			return true
		}
	}

	return false
}

// WithSession stores sess in ctx, together with the plain user id for code that only needs that.
func WithSession(ctx context.Context, sess Session) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeySession, sess)
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, sess.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, sess.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, sess.TokenID)

	return ctx
}

func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(constant.ContextKeySession).(Session)

	return sess, ok && sess.UserID != constant.Empty
}

// Actor names whoever acts in ctx for audit columns.
func Actor(ctx context.Context) string {
	if sess, ok := FromContext(ctx); ok {
		return sess.UserID
	}

	return constant.ContextGuest
}
