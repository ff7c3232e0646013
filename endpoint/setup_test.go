package endpoint

import (
	"os"
	"testing"

	"github.com/ariebrainware/dentara-clinic/config"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

// TestMain sets up consistent test configuration for all tests in the
// endpoint package.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("JWTSECRET", "test-secret-123")
	util.SetJWTSecret("test-secret-123")
	config.ResetRedisClientForTest()
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}
