package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of clinic roles. A user's role is fixed at signup.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleDoctor  Role = "doctor"
	RoleManager Role = "manager"
)

// Roles lists every role in display order.
var Roles = []Role{RoleStaff, RoleDoctor, RoleManager}

func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleDoctor, RoleManager:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: role %q", ErrInvalidValue, s)
	}
	return r, nil
}

// UnmarshalText lets JSON and form decoding reject unknown roles.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// HomePath returns the dashboard a freshly logged-in user lands on.
func (r Role) HomePath() string {
	switch r {
	case RoleStaff:
		return "/staff-dashboard"
	case RoleDoctor:
		return "/doctor-dashboard"
	case RoleManager:
		return "/manager-dashboard"
	}
	return "/login"
}
