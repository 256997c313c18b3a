package roster

import "strings"

// Permission is a GitHub repository permission level.
type Permission string

const (
	PermissionPull     Permission = "pull"
	PermissionTriage   Permission = "triage"
	PermissionPush     Permission = "push"
	PermissionMaintain Permission = "maintain"
	PermissionAdmin    Permission = "admin"
)

// validPermissions is the set of recognized permission values.
var validPermissions = map[Permission]bool{
	PermissionPull:     true,
	PermissionTriage:   true,
	PermissionPush:     true,
	PermissionMaintain: true,
	PermissionAdmin:    true,
}

// Valid reports whether p is one of the five GitHub permission levels.
func (p Permission) Valid() bool {
	return validPermissions[p]
}

// rolePermissions maps role-group labels to permission levels. Labels not
// in this table fall back to the config's default permission.
var rolePermissions = map[string]Permission{
	"admins":       PermissionAdmin,
	"admin":        PermissionAdmin,
	"maintainers":  PermissionMaintain,
	"maintainer":   PermissionMaintain,
	"developers":   PermissionPush,
	"developer":    PermissionPush,
	"contributors": PermissionPush,
	"contributor":  PermissionPush,
	"reviewers":    PermissionPull,
	"reviewer":     PermissionPull,
	"readers":      PermissionPull,
	"reader":       PermissionPull,
	"triagers":     PermissionTriage,
	"triager":      PermissionTriage,
}

// RoleLabelPermission looks up the permission mapped to a role-group label.
func RoleLabelPermission(label string) (Permission, bool) {
	p, ok := rolePermissions[strings.ToLower(label)]
	return p, ok
}

// ResolvePermission decides the permission for one entry. An explicit
// override wins unconditionally; otherwise a recognized role label wins;
// otherwise the default applies. Override and default are validated at the
// point they are consulted.
func ResolvePermission(label string, override, def Permission) (Permission, error) {
	if override != "" {
		if !override.Valid() {
			return "", configErrorf("invalid permission %q (must be one of pull, triage, push, maintain, admin)", override)
		}
		return override, nil
	}
	if p, ok := RoleLabelPermission(label); ok {
		return p, nil
	}
	if !def.Valid() {
		return "", configErrorf("invalid default permission %q (must be one of pull, triage, push, maintain, admin)", def)
	}
	return def, nil
}
