package model

import (
	"time"

	"gorm.io/gorm"
)

// Credential is the identity provider's account record. It is separate from
// User: an identity can exist without a clinic profile.
type Credential struct {
	UID            string `gorm:"primaryKey;size:36" json:"uid"`
	Email          string `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Password       string `gorm:"type:varchar(255);not null" json:"-"`
	PasswordSalt   string `gorm:"type:varchar(64)" json:"-"`
	FailedAttempts int    `gorm:"default:0" json:"failed_attempts"`
	// LockedUntil is a unix timestamp; nil means unlocked.
	LockedUntil *int64    `json:"locked_until"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Credential) TableName() string { return "credentials" }

// Session is an issued identity token.
type Session struct {
	gorm.Model
	UID          string    `gorm:"type:varchar(36);index;not null" json:"uid"`
	SessionToken string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	ClientIP     string    `gorm:"type:varchar(45)" json:"client_ip"`
	Browser      string    `gorm:"type:varchar(512)" json:"browser"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
