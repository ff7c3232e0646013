package identity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("malformed email")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidToken       = errors.New("invalid or expired session token")
)

// LockedError is returned by SignIn while an account is locked out.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account is locked until %s due to multiple failed login attempts", e.Until.UTC().Format(time.RFC3339))
}
