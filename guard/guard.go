// Package guard decides whether a request may reach a route. The decision
// is recomputed for every request from a freshly resolved session.
package guard

import (
	"strings"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/session"
)

// LoginPath is the public entry point denied requests are sent to.
const LoginPath = "/login"

type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "redirect-to-login"
}

// Evaluate allows p when it is authenticated and its role is in allowed.
// A nil principal is the unauthenticated state.
func Evaluate(p *session.Principal, allowed []model.Role) Decision {
	if p == nil {
		return RedirectToLogin
	}
	for _, r := range allowed {
		if p.Role == r {
			return Allow
		}
	}
	return RedirectToLogin
}

// Rule gives the roles allowed under a path prefix.
type Rule struct {
	Prefix string
	Roles  []model.Role
}

var publicPaths = []string{"/", LoginPath, "/signup", "/token/validate"}

// Rules lists the guarded subtrees. The longest matching prefix wins.
var Rules = []Rule{
	{Prefix: "/staff-dashboard", Roles: []model.Role{model.RoleStaff}},
	{Prefix: "/doctor-dashboard", Roles: []model.Role{model.RoleDoctor}},
	{Prefix: "/manager-dashboard", Roles: []model.Role{model.RoleManager}},
	{Prefix: "/api/tasks", Roles: []model.Role{model.RoleStaff, model.RoleManager}},
	{Prefix: "/api/reports", Roles: []model.Role{model.RoleStaff, model.RoleManager}},
	{Prefix: "/api/maintenance", Roles: []model.Role{model.RoleManager}},
	{Prefix: "/api/users", Roles: []model.Role{model.RoleManager}},
	{Prefix: "/api/security-logs", Roles: []model.Role{model.RoleManager}},
}

// IsPublic reports whether path needs no session.
func IsPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return strings.HasPrefix(path, "/swagger/")
}

// AllowedRoles returns the roles of the longest rule matching path. ok is
// false when no rule covers it.
func AllowedRoles(path string) (roles []model.Role, ok bool) {
	best := -1
	for i, r := range Rules {
		if path != r.Prefix && !strings.HasPrefix(path, r.Prefix+"/") {
			continue
		}
		if best < 0 || len(r.Prefix) > len(Rules[best].Prefix) {
			best = i
		}
	}
	if best < 0 {
		return nil, false
	}
	return Rules[best].Roles, true
}

// Check evaluates path for p. Public paths are always allowed; any other
// path without a rule is allowed to every authenticated role.
func Check(path string, p *session.Principal) Decision {
	if IsPublic(path) {
		return Allow
	}
	roles, ok := AllowedRoles(path)
	if !ok {
		roles = model.Roles
	}
	return Evaluate(p, roles)
}
