package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/dentara-clinic/dashboard"
	"github.com/ariebrainware/dentara-clinic/identity"
	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/report"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/session"
	"github.com/ariebrainware/dentara-clinic/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testToday = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	r        *gin.Engine
	db       *gorm.DB
	ids      *identity.Provider
	repos    *repository.Registry
	sessions *session.Manager
}

// setupEndpointTest builds the full router over a private in-memory
// database. uploader may be nil.
func setupEndpointTest(t *testing.T, uploader *report.S3Uploader) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	now := func() time.Time { return testToday }
	ids := identity.NewProvider(db)
	repos := repository.NewWithClock(store.NewSQL(db, nil), now)
	sessions := session.NewManager(ids, repos.Users)
	dash := dashboard.NewService(repos)
	dash.SetClock(now)

	r := gin.New()
	r.Use(middleware.ServicesMiddleware(middleware.Services{
		DB:         db,
		Repos:      repos,
		Sessions:   sessions,
		Dashboards: dash,
		Uploader:   uploader,
	}))
	RegisterRoutes(r)
	return &testEnv{r: r, db: db, ids: ids, repos: repos, sessions: sessions}
}

// loginAs creates an account with role and returns its uid and a live token.
func (env *testEnv) loginAs(t *testing.T, email string, role model.Role) (string, string) {
	t.Helper()
	ctx := context.Background()
	uid, err := env.sessions.Signup(ctx, email, "secret1", role, identity.ClientInfo{})
	require.NoError(t, err)
	res := env.sessions.Login(ctx, email, "secret1", identity.ClientInfo{IP: "127.0.0.1"})
	require.True(t, res.Success, "login error: %v", res.Error)
	return uid, res.Token
}

func (env *testEnv) doctor(t *testing.T, email, first, last string) (string, string) {
	t.Helper()
	uid, token := env.loginAs(t, email, model.RoleDoctor)
	require.NoError(t, env.repos.Users.CompleteProfile(context.Background(), uid, model.ProfileUpdate{FirstName: first, LastName: last}))
	return uid, token
}

type requestSpec struct {
	method string
	path   string
	body   interface{}
	token  string
}

func performRequest(r *gin.Engine, rs requestSpec) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *strings.Reader
	switch v := rs.body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(v)
	default:
		b, _ := json.Marshal(v)
		reader = strings.NewReader(string(b))
	}

	req := httptest.NewRequest(rs.method, rs.path, reader)
	if rs.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rs.token != "" {
		req.Header.Set("session-token", rs.token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &response)
	}
	return w, response
}

func dataOf(t *testing.T, response map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok, "response data is not an object: %v", response)
	return data
}
