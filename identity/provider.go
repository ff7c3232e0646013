// Package identity is the local identity provider. It owns credentials and
// issued session tokens; clinic profiles and roles live in the users
// collection and are resolved by the session package.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 6
	MaxFailedAttempts = 5
	LockoutDuration   = 15 * time.Minute
	DefaultSessionTTL = time.Hour
)

// ClientInfo describes the caller of a sign-in, for session rows and
// security logs.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// Token is an issued session token.
type Token struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims are the JWT claims of a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// EventKind distinguishes identity-change notifications.
type EventKind int

const (
	SignedIn EventKind = iota
	SignedOut
)

func (k EventKind) String() string {
	if k == SignedIn {
		return "signed-in"
	}
	return "signed-out"
}

// Event is delivered to OnIdentityChange listeners. Token is empty for
// SignOutEverywhere.
type Event struct {
	Kind  EventKind
	UID   string
	Token string
}

// Provider implements sign-up, sign-in and token verification on top of
// the credentials and sessions tables.
type Provider struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	listeners map[int]func(Event)
	nextID    int
}

var emailValidator = validator.New()

func NewProvider(db *gorm.DB) *Provider {
	return &Provider{db: db, ttl: DefaultSessionTTL, now: time.Now, listeners: map[int]func(Event){}}
}

// SetClock overrides the time source. Intended for tests.
func (p *Provider) SetClock(now func() time.Time) {
	p.now = now
}

// SetSessionTTL changes how long issued tokens stay valid.
func (p *Provider) SetSessionTTL(ttl time.Duration) {
	p.ttl = ttl
}

// OnIdentityChange registers fn for sign-in and sign-out notifications. The
// returned func unregisters it.
func (p *Provider) OnIdentityChange(fn func(Event)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

func (p *Provider) emit(ev Event) {
	p.mu.RLock()
	fns := make([]func(Event), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a credential and returns its uid.
func (p *Provider) SignUp(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}

	db := p.db.WithContext(ctx)
	var existing model.Credential
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", ErrEmailInUse
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("look up credential: %w", err)
	}

	salt, err := util.GenerateSalt()
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	hashed, err := util.HashPasswordArgon2(password, salt)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	cred := model.Credential{UID: uuid.NewString(), Email: email, Password: hashed, PasswordSalt: salt}
	if err := db.Create(&cred).Error; err != nil {
		return "", fmt.Errorf("create credential: %w", err)
	}
	util.UserEmailCacheSet(cred.UID, cred.Email)
	return cred.UID, nil
}

// SignIn checks the password, applies the lockout policy and issues a
// session token.
func (p *Provider) SignIn(ctx context.Context, email, password string, ci ClientInfo) (*Token, error) {
	email = normalizeEmail(email)
	if err := emailValidator.Var(email, "required,email"); err != nil {
		util.LogLoginFailure(email, ci.IP, ci.UserAgent, "malformed email")
		return nil, ErrInvalidEmail
	}

	db := p.db.WithContext(ctx)
	var cred model.Credential
	if err := db.Where("email = ?", email).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.LogLoginFailure(email, ci.IP, ci.UserAgent, "user not found")
			return nil, ErrInvalidCredentials
		}
		util.LogLoginFailure(email, ci.IP, ci.UserAgent, "database error")
		return nil, fmt.Errorf("look up credential: %w", err)
	}

	now := p.now()
	if cred.LockedUntil != nil && *cred.LockedUntil > now.Unix() {
		util.LogLoginFailure(email, ci.IP, ci.UserAgent, "account locked")
		return nil, &LockedError{Until: time.Unix(*cred.LockedUntil, 0)}
	}

	match, err := util.VerifyPassword(password, cred.Password, cred.PasswordSalt)
	if err != nil {
		util.LogLoginFailure(email, ci.IP, ci.UserAgent, "password verification error")
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		p.recordFailure(db, &cred, ci)
		util.LogLoginFailure(email, ci.IP, ci.UserAgent, "invalid password")
		return nil, ErrInvalidCredentials
	}

	if cred.FailedAttempts > 0 || cred.LockedUntil != nil {
		cred.FailedAttempts = 0
		cred.LockedUntil = nil
		if err := db.Save(&cred).Error; err != nil {
			util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: cred.UID, Email: email, IP: ci.IP, Message: fmt.Sprintf("Failed to reset failed attempts: %v", err)})
		}
	}
	p.upgradeLegacyHash(db, &cred, password, ci)

	tok, err := p.issue(ctx, cred, ci)
	if err != nil {
		util.LogLoginFailure(email, ci.IP, ci.UserAgent, "session creation failed")
		return nil, err
	}
	p.emit(Event{Kind: SignedIn, UID: cred.UID, Token: tok.Value})
	return tok, nil
}

func (p *Provider) recordFailure(db *gorm.DB, cred *model.Credential, ci ClientInfo) {
	cred.FailedAttempts++
	if cred.FailedAttempts >= MaxFailedAttempts {
		until := p.now().Add(LockoutDuration).Unix()
		cred.LockedUntil = &until
		util.LogAccountLocked(cred.UID, cred.Email, ci.IP, "too many failed login attempts")
	}
	if err := db.Save(cred).Error; err != nil {
		util.LogLoginFailure(cred.Email, ci.IP, ci.UserAgent, "failed to update failed attempts")
	}
}

// upgradeLegacyHash rehashes HMAC-era passwords with argon2id after a
// successful sign-in. Failures are logged and otherwise ignored.
func (p *Provider) upgradeLegacyHash(db *gorm.DB, cred *model.Credential, plain string, ci ClientInfo) {
	if strings.HasPrefix(cred.Password, util.Argon2Prefix) {
		return
	}
	salt, err := util.GenerateSalt()
	if err != nil {
		return
	}
	hashed, err := util.HashPasswordArgon2(plain, salt)
	if err != nil {
		return
	}
	cred.Password = hashed
	cred.PasswordSalt = salt
	if err := db.Save(cred).Error; err != nil {
		util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: cred.UID, Email: cred.Email, IP: ci.IP, Message: fmt.Sprintf("Failed to upgrade password hash: %v", err)})
		return
	}
	util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventPasswordChanged, UserID: cred.UID, Email: cred.Email, IP: ci.IP, Message: "Upgraded password hash to Argon2"})
}

func (p *Provider) issue(ctx context.Context, cred model.Credential, ci ClientInfo) (*Token, error) {
	now := p.now()
	expires := now.Add(p.ttl)
	claims := Claims{
		Email: cred.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   cred.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(util.GetJWTSecretByte())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	row := model.Session{UID: cred.UID, SessionToken: signed, ExpiresAt: expires, ClientIP: ci.IP, Browser: ci.UserAgent}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	if err := util.CacheSession(ctx, signed, cred.UID, expires.Sub(now)); err != nil {
		// The sessions table stays authoritative.
		util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: cred.UID, Email: cred.Email, IP: ci.IP, Message: fmt.Sprintf("Failed to cache session: %v", err)})
	}
	return &Token{UID: cred.UID, Email: cred.Email, Value: signed, ExpiresAt: expires}, nil
}

// Verify checks a token's signature and expiry and that it has not been
// signed out. It returns the token's uid and email.
func (p *Provider) Verify(ctx context.Context, token string) (*Token, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var claims Claims
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}, SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return util.GetJWTSecretByte(), nil
	}); err != nil {
		return nil, ErrInvalidToken
	}
	now := p.now()
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(now) {
		return nil, ErrInvalidToken
	}
	tok := &Token{UID: claims.Subject, Email: claims.Email, Value: token, ExpiresAt: claims.ExpiresAt.Time}

	if uid, ok := util.CachedSessionUID(ctx, token); ok && uid == claims.Subject {
		return tok, nil
	}
	var row model.Session
	err := p.db.WithContext(ctx).Where("session_token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("look up session: %w", err)
	}
	if row.Expired(now) || row.UID != claims.Subject {
		return nil, ErrInvalidToken
	}
	return tok, nil
}

// SignOut revokes one token. Signing out an unknown token is not an error.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	var row model.Session
	err := p.db.WithContext(ctx).Where("session_token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("look up session: %w", err)
	}
	if err := p.db.WithContext(ctx).Delete(&row).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := util.RemoveCachedSession(ctx, row.UID, token); err != nil {
		util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: row.UID, Message: fmt.Sprintf("Failed to evict cached session: %v", err)})
	}
	p.emit(Event{Kind: SignedOut, UID: row.UID, Token: token})
	return nil
}

// SignOutEverywhere revokes every token of uid.
func (p *Provider) SignOutEverywhere(ctx context.Context, uid string) error {
	if err := p.db.WithContext(ctx).Where("uid = ?", uid).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if _, err := util.InvalidateUserSessions(ctx, uid); err != nil {
		util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: uid, Message: fmt.Sprintf("Failed to evict cached sessions: %v", err)})
	}
	p.emit(Event{Kind: SignedOut, UID: uid})
	return nil
}

// Email returns the email registered for uid, or "".
func (p *Provider) Email(uid string) string {
	return util.GetUserEmail(p.db, uid)
}
