package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of user roles. The string values are the ones the
// web client sends and displays.
type Role string

const (
	RoleAdministrator Role = "System Administrator"
	RoleNormal        Role = "Normal User"
	RoleOwner         Role = "Store Owner"
)

// Roles lists every valid role
var Roles = []Role{RoleAdministrator, RoleNormal, RoleOwner}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleNormal, RoleOwner:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a client supplied value into a Role.
// Surrounding whitespace is ignored, the comparison is otherwise exact.
func ParseRole(value string) (Role, error) {
	role := Role(strings.TrimSpace(value))
	if !role.Valid() {
		return "", fmt.Errorf("invalid role '%s'. Allowed roles: %s, %s, %s",
			value, RoleAdministrator, RoleNormal, RoleOwner)
	}
	return role, nil
}
