package endpoint

import (
	"strings"

	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

// ListUsers godoc
// @Summary      List clinic users
// @Description  Every profile ordered by last name, optionally narrowed by role or keyword
// @Tags         User
// @Produce      json
// @Security     SessionToken
// @Param        role query string false "staff|doctor|manager"
// @Param        keyword query string false "Search name or email"
// @Success      200 {object} util.APIResponse{data=object} "Users retrieved"
// @Failure      400 {object} util.APIResponse "Unknown role"
// @Router       /api/users [get]
func ListUsers(c *gin.Context) {
	var role model.Role
	if raw := c.Query("role"); raw != "" {
		r, err := model.ParseRole(raw)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid role", Err: err})
			return
		}
		role = r
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	all, err := repos.Users.All(c.Request.Context())
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve users", Err: err})
		return
	}

	keyword := strings.ToLower(strings.TrimSpace(c.Query("keyword")))
	users := make([]model.User, 0, len(all))
	for _, u := range all {
		if role != "" && u.Role != role {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(u.FullName()+" "+u.Email), keyword) {
			continue
		}
		users = append(users, u)
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Users retrieved",
		Data: map[string]interface{}{"total": len(all), "total_fetched": len(users), "users": users},
	})
}

// GetUserInfo godoc
// @Summary      Get a user profile
// @Tags         User
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "User uid"
// @Success      200 {object} util.APIResponse{data=model.User}
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/users/{id} [get]
func GetUserInfo(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	id := c.Param("id")
	u, err := repos.Users.Get(c.Request.Context(), id)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve user", Err: err})
		return
	}
	if u == nil {
		respondNotFound(c, "user", id)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User retrieved", Data: u})
}

// RevokeUserSessions godoc
// @Summary      Sign a user out everywhere
// @Description  Revokes every session of the user. Open dashboards of that user lose access on their next request.
// @Tags         User
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "User uid"
// @Success      200 {object} util.APIResponse "Sessions revoked"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/users/{id}/sessions [delete]
func RevokeUserSessions(c *gin.Context) {
	m, ok := getSessionsOrRespond(c)
	if !ok {
		return
	}
	uid := c.Param("id")
	if err := m.RevokeAll(c.Request.Context(), uid, middleware.GetPrincipal(c), middleware.ClientInfo(c)); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to revoke sessions", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Sessions revoked"})
}
