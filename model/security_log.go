package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityLog is a persisted security event: sign-ins and sign-outs, guard
// denials, rate limiting, endpoint calls and maintenance repairs.
type SecurityLog struct {
	gorm.Model
	EventType string `json:"event_type" gorm:"column:event_type;type:varchar(64);index"`
	UserID    string `json:"user_id" gorm:"column:user_id;type:varchar(64);index"`
	Email     string `json:"email" gorm:"column:email;type:varchar(191);index"`
	IP        string `json:"ip" gorm:"column:ip;type:varchar(45)"`
	// Location is "City/Country" when GeoIP lookups are enabled.
	Location string `json:"location" gorm:"column:location;type:varchar(255)"`
	// Resource is the request path an access event concerns.
	Resource  string         `json:"resource" gorm:"column:resource;type:varchar(255);index"`
	UserAgent string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	Message   string         `json:"message" gorm:"column:message;type:text"`
	Details   datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}

func (SecurityLog) TableName() string { return "security_logs" }

// RecentSecurityLogs returns up to limit entries of eventType, newest first.
// An empty eventType selects every event.
func RecentSecurityLogs(db *gorm.DB, eventType string, limit int) ([]SecurityLog, error) {
	q := db.Order("id DESC").Limit(limit)
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}
	var logs []SecurityLog
	err := q.Find(&logs).Error
	return logs, err
}
