package endpoint

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	env := setupEndpointTest(t, nil)
	docID, _ := env.doctor(t, "doc@clinic.test", "Ana", "Lima")
	env.loginAs(t, "staff@clinic.test", model.RoleStaff)
	_, manager := env.loginAs(t, "manager@clinic.test", model.RoleManager)

	w, resp := performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/users", token: manager})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), dataOf(t, resp)["total"])

	w, resp = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/users?role=Doctor", token: manager})
	require.Equal(t, http.StatusOK, w.Code)
	users := dataOf(t, resp)["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, docID, users[0].(map[string]interface{})["id"])

	w, _ = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/users?role=janitor", token: manager})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/users/" + docID, token: manager})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "doc@clinic.test", dataOf(t, resp)["email"])

	w, _ = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/users/nobody", token: manager})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsersAreManagerOnly(t *testing.T) {
	env := setupEndpointTest(t, nil)
	_, staff := env.loginAs(t, "staff@clinic.test", model.RoleStaff)

	w, _ := performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/users", token: staff})
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
}

func TestRevokeUserSessions(t *testing.T) {
	env := setupEndpointTest(t, nil)
	docID, doc := env.doctor(t, "doc@clinic.test", "Ana", "Lima")
	_, manager := env.loginAs(t, "manager@clinic.test", model.RoleManager)

	w, _ := performRequest(env.r, requestSpec{method: http.MethodGet, path: "/token/validate", token: doc})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = performRequest(env.r, requestSpec{method: http.MethodDelete, path: "/api/users/" + docID + "/sessions", token: manager})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/token/validate", token: doc})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/doctor-dashboard", token: doc})
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)

	// The manager's own session is untouched.
	w, _ = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/token/validate", token: manager})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListSecurityLogs(t *testing.T) {
	env := setupEndpointTest(t, nil)
	util.SetSecurityLoggerDB(env.db)
	t.Cleanup(func() { util.SetSecurityLoggerDB(nil) })
	_, doc := env.doctor(t, "doc@clinic.test", "Ana", "Lima")
	_, manager := env.loginAs(t, "manager@clinic.test", model.RoleManager)

	w, _ := performRequest(env.r, requestSpec{method: http.MethodGet, path: "/staff-dashboard", token: doc})
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)

	w, resp := performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/security-logs?event=UNAUTHORIZED_ACCESS", token: manager})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	logs := resp["data"].([]interface{})
	require.Len(t, logs, 1)
	assert.Equal(t, "/staff-dashboard", logs[0].(map[string]interface{})["resource"])

	w, _ = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/security-logs?limit=0", token: manager})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = performRequest(env.r, requestSpec{method: http.MethodGet, path: "/api/security-logs", token: doc})
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
}
