// Package permissions holds the route table that gates requests by role.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

const defaultNotice = "Access denied"

// Permission describes one route. Permissions lists the roles allowed on it; an empty list
// admits any signed-in user. Skip opens the route to everyone, Optional authenticates the
// caller only when credentials are sent.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Notice      string   `json:"notice"`
	Skip        bool     `json:"skip"`
	Optional    bool     `json:"optional"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions looks up the route pattern registered for method.
// Unknown routes require a signed-in user with no role restriction.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = normalize(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalize(rp.Path) == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Allows reports whether role may use the route.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

// RejectionNotice is shown to a caller turned away by the role gate.
func (p Permission) RejectionNotice() string {
	if p.Notice == "" {
		return defaultNotice
	}

	return p.Notice
}

// chi reports "/v1/spaces/" for a root route mounted under "/spaces".
func normalize(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}

	return path
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
