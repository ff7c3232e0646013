package endpoint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariebrainware/dentara-clinic/dashboard"
	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

// firstFrameTimeout bounds how long a one-shot screen request waits for
// every source of the screen.
const firstFrameTimeout = 10 * time.Second

// dashboardPath maps a screen name such as "staff/tasks/summary" to its
// route "/staff-dashboard/tasks/summary".
func dashboardPath(screen string) string {
	role, rest, _ := strings.Cut(screen, "/")
	return "/" + role + "-dashboard/" + rest
}

func screenParams(c *gin.Context) (dashboard.Params, bool) {
	var p dashboard.Params
	if err := c.ShouldBindQuery(&p); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid query", Err: err})
		return p, false
	}
	p.UserID = callerUID(c)
	return p, true
}

func getDashboardsOrRespond(c *gin.Context) (*dashboard.Service, bool) {
	svc := middleware.GetDashboards(c)
	if svc == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Dashboard service not available", Err: fmt.Errorf("dashboard service missing from context")})
		return nil, false
	}
	return svc, true
}

func respondScreenError(c *gin.Context, err error) {
	if errors.Is(err, dashboard.ErrUnknownScreen) {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Screen not found", Err: err})
		return
	}
	util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load screen", Err: err})
}

// ShowScreen answers with the first complete frame of screen.
// @Summary      Dashboard screen
// @Description  Returns the first frame in which every source of the screen has delivered
// @Tags         Dashboard
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=dashboard.Frame}
// @Failure      307 {object} util.APIResponse "Role not allowed, redirected to /login"
// @Router       /staff-dashboard/home [get]
// @Router       /doctor-dashboard/home [get]
// @Router       /manager-dashboard/kpis [get]
func ShowScreen(screen string) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, ok := getDashboardsOrRespond(c)
		if !ok {
			return
		}
		p, ok := screenParams(c)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), firstFrameTimeout)
		defer cancel()
		f, err := svc.First(ctx, screen, p)
		if err != nil {
			respondScreenError(c, err)
			return
		}
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Screen loaded", Data: f})
	}
}

// StreamScreen pushes every frame of screen as a server-sent event until
// the client goes away.
// @Summary      Live dashboard screen
// @Description  Server-sent events named "frame", one per snapshot delivery
// @Tags         Dashboard
// @Produce      text/event-stream
// @Security     SessionToken
// @Success      200 {object} dashboard.Frame
// @Router       /staff-dashboard/home/stream [get]
func StreamScreen(screen string) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, ok := getDashboardsOrRespond(c)
		if !ok {
			return
		}
		p, ok := screenParams(c)
		if !ok {
			return
		}

		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		started := false
		err := svc.Stream(c.Request.Context(), screen, p, func(f dashboard.Frame) error {
			started = true
			c.SSEvent("frame", f)
			c.Writer.Flush()
			return nil
		})
		if err == nil || c.Request.Context().Err() != nil {
			return
		}
		if !started {
			respondScreenError(c, err)
			return
		}
		c.SSEvent("error", err.Error())
	}
}
