package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locally/permissions"
	"locally/shared/constant"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		method   string
		skip     bool
		optional bool
		allowed  []string
		denied   []string
		notice   string
	}{
		{
			name:    "space creation is owner only",
			path:    "/v1/spaces",
			method:  "POST",
			allowed: []string{constant.RoleOwner},
			denied:  []string{constant.RoleTenant, constant.RoleNone},
			notice:  "Only owners can list spaces",
		},
		{
			name:    "trailing slash from a mounted root route",
			path:    "/v1/spaces/",
			method:  "POST",
			allowed: []string{constant.RoleOwner},
			denied:  []string{constant.RoleTenant},
			notice:  "Only owners can list spaces",
		},
		{
			name:   "catalog is public",
			path:   "/v1/spaces",
			method: "GET",
			skip:   true,
		},
		{
			name:     "space detail authenticates when it can",
			path:     "/v1/spaces/{id}",
			method:   "GET",
			optional: true,
			allowed:  []string{constant.RoleOwner, constant.RoleTenant, constant.RoleNone},
			notice:   "Access denied",
		},
		{
			name:    "owner space listing",
			path:    "/v1/spaces/mine",
			method:  "GET",
			allowed: []string{constant.RoleOwner},
			denied:  []string{constant.RoleTenant, constant.RoleNone},
			notice:  "Only owners can view their spaces",
		},
		{
			name:    "owner dashboard",
			path:    "/v1/dashboard/owner",
			method:  "GET",
			allowed: []string{constant.RoleOwner},
			denied:  []string{constant.RoleTenant, constant.RoleNone},
			notice:  "Only owners can view the owner dashboard",
		},
		{
			name:    "tenant dashboard",
			path:    "/v1/dashboard/tenant",
			method:  "GET",
			allowed: []string{constant.RoleTenant},
			denied:  []string{constant.RoleOwner, constant.RoleNone},
			notice:  "Only tenants can view the tenant dashboard",
		},
		{
			name:    "role self assignment is open to roleless users",
			path:    "/v1/me/role",
			method:  "put",
			allowed: []string{constant.RoleNone, constant.RoleTenant},
			notice:  "Access denied",
		},
		{
			name:    "unknown route needs only a sign in",
			path:    "/v1/unknown",
			method:  "DELETE",
			allowed: []string{constant.RoleNone, constant.RoleOwner},
			notice:  "Access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, permission.Skip)
			assert.Equal(t, tt.optional, permission.Optional)

			for _, role := range tt.allowed {
				assert.True(t, permission.Allows(role), role)
			}

			for _, role := range tt.denied {
				assert.False(t, permission.Allows(role), role)
			}

			if tt.notice != "" {
				assert.Equal(t, tt.notice, permission.RejectionNotice())
			}
		})
	}
}
