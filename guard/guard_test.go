package guard

import (
	"testing"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/session"
	"github.com/stretchr/testify/assert"
)

func principal(role model.Role) *session.Principal {
	return &session.Principal{UID: "u1", Role: role}
}

func TestEvaluate(t *testing.T) {
	staffOnly := []model.Role{model.RoleStaff}
	assert.Equal(t, Allow, Evaluate(principal(model.RoleStaff), staffOnly))
	assert.Equal(t, RedirectToLogin, Evaluate(principal(model.RoleDoctor), staffOnly))
	assert.Equal(t, RedirectToLogin, Evaluate(nil, staffOnly))
	assert.Equal(t, RedirectToLogin, Evaluate(principal(model.RoleStaff), nil))
}

func TestCheck_DoctorRedirectedFromStaffRoutes(t *testing.T) {
	doc := principal(model.RoleDoctor)
	for _, path := range []string{"/staff-dashboard", "/staff-dashboard/appointments", "/staff-dashboard/tasks/summary"} {
		assert.Equal(t, RedirectToLogin, Check(path, doc), path)
	}
	assert.Equal(t, Allow, Check("/doctor-dashboard/schedule", doc))
}

func TestCheck_RoleTable(t *testing.T) {
	cases := []struct {
		path string
		role model.Role
		want Decision
	}{
		{"/staff-dashboard/home", model.RoleStaff, Allow},
		{"/staff-dashboard/home", model.RoleManager, RedirectToLogin},
		{"/doctor-dashboard/patients", model.RoleDoctor, Allow},
		{"/doctor-dashboard/patients", model.RoleStaff, RedirectToLogin},
		{"/manager-dashboard/kpis", model.RoleManager, Allow},
		{"/manager-dashboard/kpis", model.RoleDoctor, RedirectToLogin},
		{"/staff-dashboardx", model.RoleDoctor, Allow},
		{"/me", model.RoleDoctor, Allow},
		{"/api/appointments/a1/status", model.RoleDoctor, Allow},
		{"/api/tasks/t1/toggle", model.RoleDoctor, RedirectToLogin},
		{"/api/tasks", model.RoleStaff, Allow},
		{"/api/reports/no-shows", model.RoleManager, Allow},
		{"/api/maintenance/repair-doctor-names", model.RoleStaff, RedirectToLogin},
		{"/api/maintenance/repair-doctor-names", model.RoleManager, Allow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Check(tc.path, principal(tc.role)), "%s as %s", tc.path, tc.role)
	}
}

func TestCheck_PublicAndUnauthenticated(t *testing.T) {
	for _, path := range []string{"/", "/login", "/signup", "/token/validate", "/swagger/index.html"} {
		assert.Equal(t, Allow, Check(path, nil), path)
	}
	assert.Equal(t, RedirectToLogin, Check("/me", nil))
	assert.Equal(t, RedirectToLogin, Check("/manager-dashboard", nil))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "redirect-to-login", RedirectToLogin.String())
}
