package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request as an endpoint event. Events are
// persisted to the security log table once util.SetSecurityLoggerDB has run.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		userID, _ := GetUserID(c)
		role, _ := GetRole(c)

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if userID != "" {
			details["user_id"] = userID
		}
		if role != "" {
			details["role"] = string(role)
		}

		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventEndpointCall,
			UserID:    userID,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Resource:  c.Request.URL.Path,
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
