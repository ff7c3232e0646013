package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/dentara-clinic/guard"
	"github.com/ariebrainware/dentara-clinic/identity"
	"github.com/ariebrainware/dentara-clinic/session"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

// SessionToken reads the token from the session-token header, falling back
// to an Authorization bearer token.
func SessionToken(c *gin.Context) string {
	if tok := strings.TrimSpace(c.GetHeader("session-token")); tok != "" {
		return tok
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// ClientInfo describes the caller for the security log.
func ClientInfo(c *gin.Context) identity.ClientInfo {
	return identity.ClientInfo{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

func isSessionRejected(err error) bool {
	var authErr *session.AuthError
	var dataErr *session.DataError
	return errors.As(err, &authErr) || errors.As(err, &dataErr)
}

// ValidateLoginToken requires a live session and stores the resolved
// principal. The role is re-read for every request.
func ValidateLoginToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := GetSessions(c)
		if m == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Session service not available",
				Err: fmt.Errorf("session manager missing from context"),
			})
			c.Abort()
			return
		}

		token := SessionToken(c)
		if token == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Missing session token",
				Err: fmt.Errorf("session token required"),
			})
			c.Abort()
			return
		}

		p, err := m.Resolve(c.Request.Context(), token)
		if err != nil {
			if isSessionRejected(err) {
				util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid or expired session", Err: err})
			} else {
				util.CallServerError(c, util.APIErrorParams{Msg: "Failed to resolve session", Err: err})
			}
			c.Abort()
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

// RouteGuard applies the role rules of package guard to the request path.
// Denied requests are redirected to the login page and never reach the
// handler.
func RouteGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if guard.IsPublic(path) {
			c.Next()
			return
		}

		var p *session.Principal
		reason := "no session"
		if token := SessionToken(c); token != "" {
			m := GetSessions(c)
			if m == nil {
				util.CallServerError(c, util.APIErrorParams{
					Msg: "Session service not available",
					Err: fmt.Errorf("session manager missing from context"),
				})
				c.Abort()
				return
			}
			resolved, err := m.Resolve(c.Request.Context(), token)
			switch {
			case err == nil:
				p = resolved
			case isSessionRejected(err):
				reason = err.Error()
			default:
				util.CallServerError(c, util.APIErrorParams{Msg: "Failed to resolve session", Err: err})
				c.Abort()
				return
			}
		}

		if guard.Check(path, p) == guard.RedirectToLogin {
			uid, email := "", ""
			if p != nil {
				uid, email = p.UID, p.Email
				reason = fmt.Sprintf("role %s not allowed", p.Role)
			}
			util.LogUnauthorizedAccess(uid, email, c.ClientIP(), path, reason)
			util.CallUserFound(c, guard.LoginPath, util.APISuccessParams{Msg: "Login required"})
			c.Abort()
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}
