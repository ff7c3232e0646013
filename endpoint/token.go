package endpoint

import (
	"errors"

	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

// ValidateToken godoc
// @Summary      Validate session token
// @Description  Checks the token and returns its owner with the role read from the profile. Unlike guarded pages, a bad token gets 401 rather than a redirect.
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Valid session token"
// @Failure      401 {object} util.APIResponse "Invalid or expired session token"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /token/validate [get]
func ValidateToken(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid session token", Err: errors.New("session token required")})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Valid session token",
		Data: map[string]interface{}{
			"user_id": p.UID,
			"email":   p.Email,
			"role":    p.Role,
			"home":    p.Role.HomePath(),
		},
	})
}
