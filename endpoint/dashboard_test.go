package endpoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/staff-dashboard/tasks/summary", dashboardPath("staff/tasks/summary"))
	assert.Equal(t, "/doctor-dashboard/home", dashboardPath("doctor/home"))
}

func TestDashboardRedirectsWrongRole(t *testing.T) {
	env := setupEndpointTest(t, nil)
	_, doc := env.doctor(t, "doc@clinic.test", "Ana", "Lima")
	_, staff := env.loginAs(t, "staff@clinic.test", model.RoleStaff)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
	}{
		{"doctor on staff home", "/staff-dashboard/home", doc, http.StatusTemporaryRedirect},
		{"doctor on staff api", "/api/tasks", doc, http.StatusTemporaryRedirect},
		{"staff on manager kpis", "/manager-dashboard/kpis", staff, http.StatusTemporaryRedirect},
		{"no token", "/doctor-dashboard", "", http.StatusTemporaryRedirect},
		{"unknown token", "/staff-dashboard", "not-a-token", http.StatusTemporaryRedirect},
		{"doctor on own home", "/doctor-dashboard/home", doc, http.StatusOK},
		{"staff on own home", "/staff-dashboard", staff, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := performRequest(env.r, requestSpec{method: http.MethodGet, path: tt.path, token: tt.token})
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode == http.StatusTemporaryRedirect {
				assert.Equal(t, "/login", w.Header().Get("Location"))
			}
		})
	}
}

func TestStaffHomeFrame(t *testing.T) {
	env := setupEndpointTest(t, nil)
	docID, _ := env.doctor(t, "doc@clinic.test", "Ana", "Lima")
	_, staff := env.loginAs(t, "staff@clinic.test", model.RoleStaff)
	ctx := context.Background()
	_, err := env.repos.Appointments.Create(ctx, model.Appointment{PatientName: "Jane Doe", DoctorID: docID, Date: "2025-06-10", Time: "09:00"})
	require.NoError(t, err)
	_, err = env.repos.Appointments.Create(ctx, model.Appointment{PatientName: "Not Today", DoctorID: docID, Date: "2025-06-11", Time: "09:00"})
	require.NoError(t, err)
	_, err = env.repos.Tasks.Create(ctx, model.Task{Description: "Call lab"})
	require.NoError(t, err)

	w, resp := performRequest(env.r, requestSpec{method: http.MethodGet, path: "/staff-dashboard/home", token: staff})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	frame := dataOf(t, resp)
	assert.Equal(t, "staff/home", frame["screen"])
	assert.Equal(t, true, frame["ready"])

	home := frame["data"].(map[string]interface{})
	assert.Equal(t, "2025-06-10", home["date"])
	appts := home["appointments"].([]interface{})
	require.Len(t, appts, 1)
	assert.Equal(t, "Ana Lima", appts[0].(map[string]interface{})["doctor_name"])
	assert.Len(t, home["pending_tasks"], 1)
}

func TestStreamScreenSendsFrames(t *testing.T) {
	env := setupEndpointTest(t, nil)
	_, staff := env.loginAs(t, "staff@clinic.test", model.RoleStaff)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/staff-dashboard/tasks/summary/stream", nil).WithContext(ctx)
	req.Header.Set("session-token", staff)
	w := httptest.NewRecorder()
	env.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "event:frame"), body)
	assert.Contains(t, body, `"screen":"staff/tasks/summary"`)
}

func TestRepairDoctorNamesRequiresManager(t *testing.T) {
	env := setupEndpointTest(t, nil)
	ctx := context.Background()
	docID, _ := env.loginAs(t, "doc@clinic.test", model.RoleDoctor)
	_, staff := env.loginAs(t, "staff@clinic.test", model.RoleStaff)
	_, manager := env.loginAs(t, "manager@clinic.test", model.RoleManager)

	// Booked before the doctor had a name, so the snapshot is empty.
	id, err := env.repos.Appointments.Create(ctx, model.Appointment{PatientName: "Jane Doe", DoctorID: docID, Date: "2025-06-10", Time: "09:00"})
	require.NoError(t, err)
	require.NoError(t, env.repos.Users.CompleteProfile(ctx, docID, model.ProfileUpdate{FirstName: "Ana", LastName: "Lima"}))
	_, err = env.repos.Appointments.Create(ctx, model.Appointment{PatientName: "John Roe", DoctorID: docID, Date: "2025-06-10", Time: "10:00"})
	require.NoError(t, err)

	w, _ := performRequest(env.r, requestSpec{method: http.MethodPost, path: "/api/maintenance/repair-doctor-names", token: staff})
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)

	w, resp := performRequest(env.r, requestSpec{method: http.MethodPost, path: "/api/maintenance/repair-doctor-names", token: manager})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), dataOf(t, resp)["updated"])

	a, err := env.repos.Appointments.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", a.DoctorName)
}
