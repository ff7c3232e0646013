package endpoint

import (
	"fmt"
	"strconv"

	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

const maxSecurityLogs = 500

// ListSecurityLogs godoc
// @Summary      Recent security events
// @Description  Newest first. event filters by type, such as UNAUTHORIZED_ACCESS.
// @Tags         User
// @Produce      json
// @Security     SessionToken
// @Param        event query string false "Event type"
// @Param        limit query int false "Max entries (default 100, max 500)"
// @Success      200 {object} util.APIResponse{data=[]model.SecurityLog}
// @Failure      400 {object} util.APIResponse "Invalid limit"
// @Router       /api/security-logs [get]
func ListSecurityLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > maxSecurityLogs {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid limit", Err: fmt.Errorf("%w: limit %q", model.ErrInvalidValue, c.Query("limit"))})
		return
	}
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database not available", Err: fmt.Errorf("database missing from context")})
		return
	}
	logs, err := model.RecentSecurityLogs(db.WithContext(c.Request.Context()), c.Query("event"), limit)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve security logs", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Security logs retrieved", Data: logs})
}
