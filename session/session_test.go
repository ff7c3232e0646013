package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ariebrainware/dentara-clinic/identity"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/store"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	ids   *identity.Provider
	repos *repository.Registry
	m     *Manager
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	util.SetJWTSecret("session-test-secret")
	dsn := fmt.Sprintf("file:testdb_session_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, model.AutoMigrate(db))

	ids := identity.NewProvider(db)
	repos := repository.New(store.NewSQL(db, nil))
	return &testEnv{db: db, ids: ids, repos: repos, m: NewManager(ids, repos.Users)}
}

func TestLoginResolvesRole(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	uid, err := env.m.Signup(ctx, "doc@clinic.test", "secret1", model.RoleDoctor, identity.ClientInfo{})
	require.NoError(t, err)

	res := env.m.Login(ctx, "doc@clinic.test", "secret1", identity.ClientInfo{IP: "10.0.0.1"})
	require.True(t, res.Success, "login error: %v", res.Error)
	assert.NoError(t, res.Error)
	assert.Equal(t, model.RoleDoctor, res.Role)
	assert.Equal(t, uid, res.UserID)
	assert.NotEmpty(t, res.Token)

	p, err := env.m.Resolve(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, p.Role)
}

func TestLoginAuthError(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	_, err := env.m.Signup(ctx, "doc@clinic.test", "secret1", model.RoleDoctor, identity.ClientInfo{})
	require.NoError(t, err)

	res := env.m.Login(ctx, "doc@clinic.test", "nope", identity.ClientInfo{})
	assert.False(t, res.Success)
	var authErr *AuthError
	require.ErrorAs(t, res.Error, &authErr)
	assert.ErrorIs(t, res.Error, identity.ErrInvalidCredentials)
}

func TestLoginDataErrorRevokesToken(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	// Identity without a clinic profile.
	uid, err := env.ids.SignUp(ctx, "orphan@clinic.test", "secret1")
	require.NoError(t, err)

	res := env.m.Login(ctx, "orphan@clinic.test", "secret1", identity.ClientInfo{})
	assert.False(t, res.Success)
	assert.Empty(t, res.Role)
	var dataErr *DataError
	require.ErrorAs(t, res.Error, &dataErr)
	assert.Equal(t, uid, dataErr.UID)

	var live int64
	require.NoError(t, env.db.Model(&model.Session{}).Where("uid = ?", uid).Count(&live).Error)
	assert.Zero(t, live)
}

func TestResolveRereadsRole(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	uid, err := env.m.Signup(ctx, "s@clinic.test", "secret1", model.RoleStaff, identity.ClientInfo{})
	require.NoError(t, err)
	res := env.m.Login(ctx, "s@clinic.test", "secret1", identity.ClientInfo{})
	require.True(t, res.Success)

	require.NoError(t, env.db.Table("users").Where("id = ?", uid).Update("role", "manager").Error)
	p, err := env.m.Resolve(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, p.Role)
}

func TestSignupRejectsWeakPasswordAndBadRole(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.m.Signup(ctx, "a@clinic.test", "123", model.RoleStaff, identity.ClientInfo{})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, identity.ErrWeakPassword)

	_, err = env.m.Signup(ctx, "a@clinic.test", "secret1", model.Role("admin"), identity.ClientInfo{})
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, model.ErrInvalidValue)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	_, err := env.m.Signup(ctx, "s@clinic.test", "secret1", model.RoleStaff, identity.ClientInfo{})
	require.NoError(t, err)
	res := env.m.Login(ctx, "s@clinic.test", "secret1", identity.ClientInfo{})
	require.True(t, res.Success)

	require.NoError(t, env.m.Logout(ctx, res.Token, identity.ClientInfo{}))
	_, err = env.m.Resolve(ctx, res.Token)
	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestRevokeAllEndsEverySession(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	uid, err := env.m.Signup(ctx, "doc@clinic.test", "secret1", model.RoleDoctor, identity.ClientInfo{})
	require.NoError(t, err)
	phone := env.m.Login(ctx, "doc@clinic.test", "secret1", identity.ClientInfo{UserAgent: "phone"})
	laptop := env.m.Login(ctx, "doc@clinic.test", "secret1", identity.ClientInfo{UserAgent: "laptop"})
	require.True(t, phone.Success)
	require.True(t, laptop.Success)

	require.NoError(t, env.m.RevokeAll(ctx, uid, &Principal{UID: "manager-1"}, identity.ClientInfo{}))

	for _, tok := range []string{phone.Token, laptop.Token} {
		_, err := env.m.Resolve(ctx, tok)
		var authErr *AuthError
		assert.ErrorAs(t, err, &authErr)
	}

	// A fresh login still works afterwards.
	again := env.m.Login(ctx, "doc@clinic.test", "secret1", identity.ClientInfo{})
	assert.True(t, again.Success)
}

func TestContextLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	_, err := env.m.Signup(ctx, "m@clinic.test", "secret1", model.RoleManager, identity.ClientInfo{})
	require.NoError(t, err)

	sc := NewContext(env.m, identity.ClientInfo{UserAgent: "dentara-admin"})
	sc.Start()
	defer sc.Close()

	st, p := sc.State()
	assert.Equal(t, Unauthenticated, st)
	assert.Nil(t, p)
	assert.False(t, sc.Can(model.RoleManager))

	res := sc.Login(ctx, "m@clinic.test", "secret1")
	require.True(t, res.Success)
	st, p = sc.State()
	assert.Equal(t, Authenticated, st)
	assert.Equal(t, model.RoleManager, p.Role)
	assert.True(t, sc.Can(model.RoleStaff, model.RoleManager))
	assert.False(t, sc.Can(model.RoleDoctor))

	require.NoError(t, sc.Logout(ctx))
	st, _ = sc.State()
	assert.Equal(t, Unauthenticated, st)
	require.NoError(t, sc.Logout(ctx))
}

func TestContextFollowsExternalSignOut(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	uid, err := env.m.Signup(ctx, "m@clinic.test", "secret1", model.RoleManager, identity.ClientInfo{})
	require.NoError(t, err)

	sc := NewContext(env.m, identity.ClientInfo{})
	sc.Start()
	defer sc.Close()
	require.True(t, sc.Login(ctx, "m@clinic.test", "secret1").Success)

	require.NoError(t, env.ids.SignOutEverywhere(ctx, uid))
	st, _ := sc.State()
	assert.Equal(t, Unauthenticated, st)
}

func TestContextRereadsRoleOnIdentityChange(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	uid, err := env.m.Signup(ctx, "u@clinic.test", "secret1", model.RoleStaff, identity.ClientInfo{})
	require.NoError(t, err)

	sc := NewContext(env.m, identity.ClientInfo{})
	sc.Start()
	defer sc.Close()
	require.True(t, sc.Login(ctx, "u@clinic.test", "secret1").Success)
	require.True(t, sc.Can(model.RoleStaff))

	require.NoError(t, env.db.Table("users").Where("id = ?", uid).Update("role", "doctor").Error)
	// A sign-in elsewhere is an identity change for the held uid.
	_, err = env.ids.SignIn(ctx, "u@clinic.test", "secret1", identity.ClientInfo{})
	require.NoError(t, err)

	assert.True(t, sc.Can(model.RoleDoctor))
	assert.False(t, sc.Can(model.RoleStaff))
}
