package middleware

import (
	"net/http"

	"github.com/ariebrainware/dentara-clinic/dashboard"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/report"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the middlewares in this package.
const (
	DBKey         = "db"
	ReposKey      = "repos"
	SessionsKey   = "sessions"
	DashboardsKey = "dashboards"
	UploaderKey   = "uploader"
	PrincipalKey  = "principal"
	UserIDKey     = "user_id"
	RoleKey       = "role"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		setCorsHeaders(c)

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func setCorsHeaders(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
	h.Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, session-token")
	h.Set("Access-Control-Max-Age", "86400")
	h.Set("Access-Control-Allow-Credentials", "true")
}

// Services are the process-wide handles handlers pull from the gin context.
// Uploader is nil when no report bucket is configured.
type Services struct {
	DB         *gorm.DB
	Repos      *repository.Registry
	Sessions   *session.Manager
	Dashboards *dashboard.Service
	Uploader   *report.S3Uploader
}

// ServicesMiddleware injects s into every request.
func ServicesMiddleware(s Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.DB != nil {
			c.Set(DBKey, s.DB)
		}
		if s.Repos != nil {
			c.Set(ReposKey, s.Repos)
		}
		if s.Sessions != nil {
			c.Set(SessionsKey, s.Sessions)
		}
		if s.Dashboards != nil {
			c.Set(DashboardsKey, s.Dashboards)
		}
		if s.Uploader != nil {
			c.Set(UploaderKey, s.Uploader)
		}
		c.Next()
	}
}

// DatabaseMiddleware injects only the gorm handle.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return ServicesMiddleware(Services{DB: db})
}

func GetDB(c *gin.Context) *gorm.DB {
	db, _ := c.Get(DBKey)
	v, _ := db.(*gorm.DB)
	return v
}

func GetRepos(c *gin.Context) *repository.Registry {
	r, _ := c.Get(ReposKey)
	v, _ := r.(*repository.Registry)
	return v
}

func GetSessions(c *gin.Context) *session.Manager {
	m, _ := c.Get(SessionsKey)
	v, _ := m.(*session.Manager)
	return v
}

func GetDashboards(c *gin.Context) *dashboard.Service {
	d, _ := c.Get(DashboardsKey)
	v, _ := d.(*dashboard.Service)
	return v
}

func GetUploader(c *gin.Context) *report.S3Uploader {
	u, _ := c.Get(UploaderKey)
	v, _ := u.(*report.S3Uploader)
	return v
}

// GetPrincipal returns the caller resolved by ValidateLoginToken or
// RouteGuard, or nil.
func GetPrincipal(c *gin.Context) *session.Principal {
	p, _ := c.Get(PrincipalKey)
	v, _ := p.(*session.Principal)
	return v
}

func GetUserID(c *gin.Context) (string, bool) {
	uid := c.GetString(UserIDKey)
	return uid, uid != ""
}

func GetRole(c *gin.Context) (model.Role, bool) {
	r, ok := c.Get(RoleKey)
	if !ok {
		return "", false
	}
	role, ok := r.(model.Role)
	return role, ok
}

func setPrincipal(c *gin.Context, p *session.Principal) {
	c.Set(PrincipalKey, p)
	c.Set(UserIDKey, p.UID)
	c.Set(RoleKey, p.Role)
}
