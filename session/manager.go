// Package session resolves who is logged in and with what role. The role
// is read from the users collection on every resolution and never cached.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariebrainware/dentara-clinic/identity"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/util"
)

// Identity is the identity provider contract the session layer needs.
type Identity interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string, ci identity.ClientInfo) (*identity.Token, error)
	SignOut(ctx context.Context, token string) error
	SignOutEverywhere(ctx context.Context, uid string) error
	Verify(ctx context.Context, token string) (*identity.Token, error)
	OnIdentityChange(fn func(identity.Event)) func()
}

// Profiles point-reads and creates clinic profiles.
type Profiles interface {
	Get(ctx context.Context, uid string) (*model.User, error)
	CreateProfile(ctx context.Context, uid string, role model.Role, email string) (*model.User, error)
}

// AuthError reports rejected credentials or sign-up input.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "authentication failed: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// DataError reports an identity without a clinic profile.
type DataError struct {
	UID string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("no user profile for identity %s", e.UID)
}

// LoginResult is the outcome of Login. Error is nil exactly when Success.
type LoginResult struct {
	Success   bool       `json:"success"`
	Role      model.Role `json:"role,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt time.Time  `json:"expires_at,omitempty"`
	Error     error      `json:"-"`
}

// Principal is an authenticated caller with a freshly read role.
type Principal struct {
	UID   string
	Email string
	Role  model.Role
	Token string
	User  *model.User
}

// Manager is the process-wide session service. Handlers receive it through
// the gin context.
type Manager struct {
	ids      Identity
	profiles Profiles
}

func NewManager(ids Identity, profiles Profiles) *Manager {
	return &Manager{ids: ids, profiles: profiles}
}

// Identity returns the underlying identity provider.
func (m *Manager) Identity() Identity {
	return m.ids
}

func isAuthFailure(err error) bool {
	var locked *identity.LockedError
	return errors.Is(err, identity.ErrInvalidCredentials) ||
		errors.Is(err, identity.ErrInvalidEmail) ||
		errors.Is(err, identity.ErrWeakPassword) ||
		errors.Is(err, identity.ErrEmailInUse) ||
		errors.Is(err, identity.ErrInvalidToken) ||
		errors.As(err, &locked)
}

// Login signs in and resolves the role from the User record keyed by the
// identity uid. If the profile is missing the issued token is revoked and
// the result carries a DataError.
func (m *Manager) Login(ctx context.Context, email, password string, ci identity.ClientInfo) LoginResult {
	tok, err := m.ids.SignIn(ctx, email, password, ci)
	if err != nil {
		if isAuthFailure(err) {
			err = &AuthError{Err: err}
		}
		return LoginResult{Error: err}
	}

	u, err := m.profiles.Get(ctx, tok.UID)
	if err != nil {
		m.revoke(ctx, tok)
		return LoginResult{Error: fmt.Errorf("resolve role: %w", err)}
	}
	if u == nil || !u.Role.Valid() {
		util.LogProfileMissing(tok.UID, tok.Email, ci.IP)
		m.revoke(ctx, tok)
		return LoginResult{Error: &DataError{UID: tok.UID}}
	}

	util.LogLoginSuccess(tok.UID, tok.Email, ci.IP, ci.UserAgent, u.Role)
	return LoginResult{Success: true, Role: u.Role, UserID: tok.UID, Token: tok.Value, ExpiresAt: tok.ExpiresAt}
}

func (m *Manager) revoke(ctx context.Context, tok *identity.Token) {
	if err := m.ids.SignOut(ctx, tok.Value); err != nil {
		util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: tok.UID, Email: tok.Email, Message: fmt.Sprintf("Failed to revoke token of incomplete login: %v", err)})
	}
}

// Logout revokes token.
func (m *Manager) Logout(ctx context.Context, token string, ci identity.ClientInfo) error {
	tok, err := m.ids.Verify(ctx, token)
	if err == nil {
		util.LogLogout(tok.UID, tok.Email, ci.IP, ci.UserAgent)
	}
	return m.ids.SignOut(ctx, token)
}

// RevokeAll signs uid out of every session. Live session contexts held
// for uid drop to unauthenticated.
func (m *Manager) RevokeAll(ctx context.Context, uid string, by *Principal, ci identity.ClientInfo) error {
	if err := m.ids.SignOutEverywhere(ctx, uid); err != nil {
		return err
	}
	byUID := ""
	if by != nil {
		byUID = by.UID
	}
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventLogout,
		UserID:    uid,
		IP:        ci.IP,
		UserAgent: ci.UserAgent,
		Message:   fmt.Sprintf("All sessions revoked by %s", byUID),
	})
	return nil
}

// Resolve verifies token and re-reads the caller's role.
func (m *Manager) Resolve(ctx context.Context, token string) (*Principal, error) {
	tok, err := m.ids.Verify(ctx, token)
	if err != nil {
		if isAuthFailure(err) {
			return nil, &AuthError{Err: err}
		}
		return nil, err
	}
	return m.principal(ctx, tok)
}

func (m *Manager) principal(ctx context.Context, tok *identity.Token) (*Principal, error) {
	u, err := m.profiles.Get(ctx, tok.UID)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}
	if u == nil || !u.Role.Valid() {
		return nil, &DataError{UID: tok.UID}
	}
	return &Principal{UID: tok.UID, Email: tok.Email, Role: u.Role, Token: tok.Value, User: u}, nil
}

// Signup creates an identity and its User record with a fixed role.
func (m *Manager) Signup(ctx context.Context, email, password string, role model.Role, ci identity.ClientInfo) (string, error) {
	if !role.Valid() {
		return "", &AuthError{Err: fmt.Errorf("%w: role %q", model.ErrInvalidValue, role)}
	}
	uid, err := m.ids.SignUp(ctx, email, password)
	if err != nil {
		if isAuthFailure(err) {
			return "", &AuthError{Err: err}
		}
		return "", err
	}
	u, err := m.profiles.CreateProfile(ctx, uid, role, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventSignupSuccess,
		UserID:    uid,
		Email:     u.Email,
		IP:        ci.IP,
		UserAgent: ci.UserAgent,
		Message:   fmt.Sprintf("User signed up as %s", role),
	})
	return uid, nil
}
