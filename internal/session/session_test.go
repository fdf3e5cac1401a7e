package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"locally/internal/session"
	"locally/shared/constant"
)

func TestRoundTrip(t *testing.T) {
	sess := session.Session{UserID: "u-1", Email: "ana@locally.cl", Role: constant.RoleOwner, TokenID: "t-1"}

	ctx := session.WithSession(context.Background(), sess)

	got, ok := session.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, got)
	assert.Equal(t, "u-1", ctx.Value(constant.ContextKeyUserID))
	assert.Equal(t, "t-1", ctx.Value(constant.ContextKeyTokenID))
	assert.Equal(t, "u-1", session.Actor(ctx))
}

func TestMissing(t *testing.T) {
	_, ok := session.FromContext(context.Background())

	assert.False(t, ok)
	assert.Equal(t, constant.ContextGuest, session.Actor(context.Background()))
}

func TestRoles(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		provisioned bool
		owner       bool
		tenant      bool
	}{
		{name: "owner", role: constant.RoleOwner, provisioned: true, owner: true},
		{name: "tenant", role: constant.RoleTenant, provisioned: true, tenant: true},
		{name: "none", role: constant.RoleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.Session{UserID: "u-1", Role: tt.role}

			assert.Equal(t, tt.provisioned, sess.Provisioned())
			assert.Equal(t, tt.owner, sess.Is(constant.RoleOwner))
			assert.Equal(t, tt.tenant, sess.Is(constant.RoleTenant))
			assert.False(t, sess.Is(constant.RoleNone))
		})
	}
}
