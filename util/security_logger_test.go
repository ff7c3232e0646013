package util

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/dentara-clinic/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestLogger captures security log output until cleanup is called.
func setupTestLogger() (*bytes.Buffer, func()) {
	buf := &bytes.Buffer{}
	prev := SetSecurityLoggerForTest(log.New(buf, "[SECURITY] ", log.LstdFlags|log.Lmsgprefix))
	return buf, func() { SetSecurityLoggerForTest(prev) }
}

func assertLogContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, substr := range expected {
		if !strings.Contains(output, substr) {
			t.Errorf("Log output missing expected substring %q\nGot: %s", substr, output)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"removes newlines", "hello\nworld", "hello world"},
		{"removes carriage returns and tabs", "a\rb\tc", "a b c"},
		{"truncates long values", strings.Repeat("a", 250), strings.Repeat("a", 200) + "..."},
		{"handles empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.expected {
				t.Errorf("sanitizeLogValue() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLogSecurityEventSanitization(t *testing.T) {
	buf, cleanup := setupTestLogger()
	defer cleanup()

	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		Email:     "user@clinic.test",
		IP:        "192.168.1.2",
		Message:   "Failed\nlogin\rattempt",
		Details:   map[string]interface{}{"reason": "x", "count": 2},
	})

	assertLogContains(t, buf.String(), []string{
		"Event=LOGIN_FAILURE",
		"Message=Failed login attempt",
		"DetailsCount=2",
	})
}

func TestLogHelpers(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func()
		contains []string
	}{
		{
			name:     "LogLoginSuccess",
			logFunc:  func() { LogLoginSuccess("uid-1", "doc@clinic.test", "192.168.1.1", "Mozilla/5.0", model.RoleDoctor) },
			contains: []string{"Event=LOGIN_SUCCESS", "UserID=uid-1", "Message=User logged in as doctor"},
		},
		{
			name:     "LogLoginFailure",
			logFunc:  func() { LogLoginFailure("doc@clinic.test", "192.168.1.1", "Mozilla/5.0", "invalid password") },
			contains: []string{"Event=LOGIN_FAILURE", "Message=Login failed: invalid password"},
		},
		{
			name:     "LogProfileMissing",
			logFunc:  func() { LogProfileMissing("uid-2", "ghost@clinic.test", "10.0.0.3") },
			contains: []string{"Event=PROFILE_MISSING", "UserID=uid-2", "Message=User role not found"},
		},
		{
			name:     "LogLogout",
			logFunc:  func() { LogLogout("uid-1", "doc@clinic.test", "192.168.1.2", "Chrome") },
			contains: []string{"Event=LOGOUT", "Message=User logged out"},
		},
		{
			name:     "LogAccountLocked",
			logFunc:  func() { LogAccountLocked("uid-1", "doc@clinic.test", "192.168.1.2", "too many failed login attempts") },
			contains: []string{"Event=ACCOUNT_LOCKED", "Message=Account locked: too many failed login attempts"},
		},
		{
			name:     "LogUnauthorizedAccess",
			logFunc:  func() { LogUnauthorizedAccess("uid-1", "doc@clinic.test", "10.0.0.1", "/staff-dashboard", "role doctor not allowed") },
			contains: []string{"Event=UNAUTHORIZED_ACCESS", "Message=Unauthorized access to /staff-dashboard: role doctor not allowed"},
		},
		{
			name:     "LogRateLimitExceeded",
			logFunc:  func() { LogRateLimitExceeded("", "10.0.0.1", "/login") },
			contains: []string{"Event=RATE_LIMIT_EXCEEDED", "Message=Rate limit exceeded for endpoint: /login"},
		},
		{
			name:     "LogDataRepair",
			logFunc:  func() { LogDataRepair("uid-9", "repair-doctor-names", 3) },
			contains: []string{"Event=DATA_REPAIR", "Message=repair-doctor-names updated 3 records", "DetailsCount=2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, cleanup := setupTestLogger()
			defer cleanup()
			tt.logFunc()
			assertLogContains(t, buf.String(), tt.contains)
		})
	}
}

func TestLogSecurityEventPersists(t *testing.T) {
	dsn := fmt.Sprintf("file:testdb_seclog_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.SecurityLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	SetSecurityLoggerDB(db)
	defer SetSecurityLoggerDB(nil)
	_, cleanup := setupTestLogger()
	defer cleanup()

	LogUnauthorizedAccess("uid-3", "staff@clinic.test", "127.0.0.1", "/doctor-dashboard", "role staff not allowed")

	var entries []model.SecurityLog
	if err := db.Where("user_id = ?", "uid-3").Find(&entries).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(entries))
	}
	if entries[0].Resource != "/doctor-dashboard" {
		t.Errorf("expected resource /doctor-dashboard, got %q", entries[0].Resource)
	}
	if entries[0].EventType != string(EventUnauthorizedAccess) || entries[0].Location != "" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}
