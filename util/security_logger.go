package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/ariebrainware/dentara-clinic/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityEventType classifies security log entries.
type SecurityEventType string

const (
	EventLoginSuccess       SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure       SecurityEventType = "LOGIN_FAILURE"
	EventSignupSuccess      SecurityEventType = "SIGNUP_SUCCESS"
	EventLogout             SecurityEventType = "LOGOUT"
	EventAccountLocked      SecurityEventType = "ACCOUNT_LOCKED"
	EventPasswordChanged    SecurityEventType = "PASSWORD_CHANGED"
	EventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded  SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
	EventProfileMissing     SecurityEventType = "PROFILE_MISSING"
	EventDataRepair         SecurityEventType = "DATA_REPAIR"
)

// SecurityEvent is one entry for the security log.
type SecurityEvent struct {
	EventType SecurityEventType
	UserID    string
	Email     string
	IP        string
	UserAgent string
	Resource  string
	Message   string
	Details   map[string]interface{}
}

var (
	securityLogger = log.New(os.Stdout, "[SECURITY] ", log.LstdFlags|log.Lmsgprefix)
	securityDB     *gorm.DB
	securityMu     sync.RWMutex
)

// SetSecurityLoggerDB makes LogSecurityEvent persist entries to db. Call it
// after the database is migrated.
func SetSecurityLoggerDB(db *gorm.DB) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityDB = db
}

func getSecurityDB() *gorm.DB {
	securityMu.RLock()
	defer securityMu.RUnlock()
	return securityDB
}

// sanitizeLogValue strips line breaks and caps the length of a value.
func sanitizeLogValue(value string) string {
	value = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(value)
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogSecurityEvent writes event to the security log and, when a database
// is configured, persists it as a model.SecurityLog row.
func LogSecurityEvent(event SecurityEvent) {
	msg := fmt.Sprintf("Event=%s UserID=%s Email=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.UserID),
		sanitizeLogValue(event.Email),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)
	if len(event.Details) > 0 {
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}
	securityLogger.Println(msg)

	db := getSecurityDB()
	if db == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.SecurityLog{
		EventType: string(event.EventType),
		UserID:    sanitizeLogValue(event.UserID),
		Email:     sanitizeLogValue(event.Email),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(GetIPLocation(event.IP).String()),
		Resource:  sanitizeLogValue(event.Resource),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := db.Create(&entry).Error; err != nil {
		securityLogger.Printf("Failed to persist security event: %v", err)
	}
}

func LogLoginSuccess(uid, email, ip, userAgent string, role model.Role) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginSuccess,
		UserID:    uid,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("User logged in as %s", role),
	})
}

func LogLoginFailure(email, ip, userAgent, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Login failed: %s", reason),
	})
}

// LogProfileMissing records an identity that authenticated but has no
// clinic User record.
func LogProfileMissing(uid, email, ip string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventProfileMissing,
		UserID:    uid,
		Email:     email,
		IP:        ip,
		Message:   "User role not found",
	})
}

func LogLogout(uid, email, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLogout,
		UserID:    uid,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged out",
	})
}

func LogAccountLocked(uid, email, ip, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventAccountLocked,
		UserID:    uid,
		Email:     email,
		IP:        ip,
		Message:   fmt.Sprintf("Account locked: %s", reason),
	})
}

// LogUnauthorizedAccess records a request the route guard turned away.
func LogUnauthorizedAccess(uid, email, ip, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorizedAccess,
		UserID:    uid,
		Email:     email,
		IP:        ip,
		Resource:  resource,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

func LogRateLimitExceeded(email, ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		Email:     email,
		IP:        ip,
		Resource:  endpoint,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// LogDataRepair records a maintenance write such as the doctor name repair.
func LogDataRepair(uid, operation string, affected int) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventDataRepair,
		UserID:    uid,
		Message:   fmt.Sprintf("%s updated %d records", operation, affected),
		Details:   map[string]interface{}{"operation": operation, "affected": affected},
	})
}

// SetSecurityLoggerForTest swaps the logger and returns the previous one.
func SetSecurityLoggerForTest(logger *log.Logger) *log.Logger {
	prev := securityLogger
	securityLogger = logger
	return prev
}
