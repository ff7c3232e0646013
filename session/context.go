package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ariebrainware/dentara-clinic/identity"
	"github.com/ariebrainware/dentara-clinic/model"
)

// State is the two-state session machine.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

const resolveTimeout = 5 * time.Second

// Context holds the session of one long-lived client, such as the admin
// CLI. It follows identity changes for as long as it is started.
type Context struct {
	m  *Manager
	ci identity.ClientInfo

	mu        sync.RWMutex
	principal *Principal
	stop      func()
}

func NewContext(m *Manager, ci identity.ClientInfo) *Context {
	return &Context{m: m, ci: ci}
}

// Start subscribes to identity-change notifications. Calling it twice is a
// no-op.
func (c *Context) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = c.m.ids.OnIdentityChange(c.onChange)
}

func (c *Context) onChange(ev identity.Event) {
	c.mu.RLock()
	held := c.principal
	c.mu.RUnlock()
	if held == nil || held.UID != ev.UID {
		return
	}

	if ev.Kind == identity.SignedOut && (ev.Token == "" || ev.Token == held.Token) {
		c.clear(held)
		return
	}

	// Any other change for the held identity re-reads the role.
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()
	p, err := c.m.Resolve(ctx, held.Token)
	if err != nil {
		var authErr *AuthError
		var dataErr *DataError
		if errors.As(err, &authErr) || errors.As(err, &dataErr) {
			c.clear(held)
			return
		}
		log.Printf("session: re-resolve role for %s: %v", held.UID, err)
		return
	}
	c.mu.Lock()
	if c.principal == held {
		c.principal = p
	}
	c.mu.Unlock()
}

// clear drops the session if it is still the one that was inspected.
func (c *Context) clear(held *Principal) {
	c.mu.Lock()
	if c.principal == held {
		c.principal = nil
	}
	c.mu.Unlock()
}

// Login authenticates and, on success, holds the resulting session.
func (c *Context) Login(ctx context.Context, email, password string) LoginResult {
	res := c.m.Login(ctx, email, password, c.ci)
	if !res.Success {
		return res
	}
	c.mu.Lock()
	c.principal = &Principal{UID: res.UserID, Email: email, Role: res.Role, Token: res.Token}
	c.mu.Unlock()
	return res
}

// Logout revokes the held token and clears the session.
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	held := c.principal
	c.principal = nil
	c.mu.Unlock()
	if held == nil {
		return nil
	}
	return c.m.Logout(ctx, held.Token, c.ci)
}

// State reports the current state and, when authenticated, a copy of the
// principal.
func (c *Context) State() (State, *Principal) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.principal == nil {
		return Unauthenticated, nil
	}
	p := *c.principal
	return Authenticated, &p
}

// Can reports whether the session is authenticated with one of roles.
func (c *Context) Can(roles ...model.Role) bool {
	st, p := c.State()
	if st != Authenticated {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Close stops following identity changes. The held session is kept until
// Logout.
func (c *Context) Close() {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
}
