package endpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/dentara-clinic/identity"
	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/session"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"doctor@clinic.test"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

type LoginResponse struct {
	Token     string     `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Role      model.Role `json:"role" example:"doctor"`
	UserID    string     `json:"user_id" example:"4f6c..."`
	ExpiresAt time.Time  `json:"expires_at"`
	Home      string     `json:"home" example:"/doctor-dashboard"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required" example:"doctor@clinic.test"`
	Password string `json:"password" binding:"required" example:"secret1"`
	Role     string `json:"role" binding:"required" example:"doctor"`
}

// LoginPage godoc
// @Summary      Login entry point
// @Description  Target of guard redirects. Credentials are posted to the same path.
// @Tags         Authentication
// @Produce      json
// @Success      200 {object} util.APIResponse
// @Router       /login [get]
func LoginPage(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Login required",
		Data: map[string]interface{}{"method": "POST", "path": "/login"},
	})
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password. The role is read from the user profile.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid credentials or locked account"
// @Failure      429 {object} util.APIResponse "Too many attempts"
// @Failure      500 {object} util.APIResponse "Profile missing or server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	m, ok := getSessionsOrRespond(c)
	if !ok {
		return
	}

	res := m.Login(c.Request.Context(), req.Email, req.Password, middleware.ClientInfo(c))
	if !res.Success {
		respondLoginError(c, res.Error)
		return
	}

	// The counter only guards failed attempts.
	_ = middleware.ResetRateLimit(c.Request.Context(), c.ClientIP(), c.Request.URL.Path)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Login successful",
		Data: LoginResponse{
			Token:     res.Token,
			Role:      res.Role,
			UserID:    res.UserID,
			ExpiresAt: res.ExpiresAt,
			Home:      res.Role.HomePath(),
		},
	})
}

func respondLoginError(c *gin.Context, err error) {
	var authErr *session.AuthError
	var dataErr *session.DataError
	var locked *identity.LockedError
	switch {
	case errors.As(err, &locked):
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Account is locked until %s due to multiple failed login attempts", locked.Until.Format(time.RFC3339)),
			Err: err,
		})
	case errors.As(err, &authErr):
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid email or password", Err: err})
	case errors.As(err, &dataErr):
		util.CallServerError(c, util.APIErrorParams{Msg: "User profile not found", Err: err})
	default:
		util.CallServerError(c, util.APIErrorParams{Msg: "Login failed", Err: err})
	}
}

// Signup godoc
// @Summary      Create an account
// @Description  Creates the identity and its clinic profile. The role cannot be changed later.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Account"
// @Success      201 {object} util.APIResponse "Account created"
// @Failure      400 {object} util.APIResponse "Invalid email, weak password, unknown role or email in use"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /signup [post]
func Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	m, ok := getSessionsOrRespond(c)
	if !ok {
		return
	}

	uid, err := m.Signup(c.Request.Context(), req.Email, req.Password, model.Role(req.Role), middleware.ClientInfo(c))
	if err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			util.CallUserError(c, util.APIErrorParams{Msg: "Signup rejected", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create account", Err: err})
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Account created", Data: map[string]interface{}{"user_id": uid}})
}

// Logout godoc
// @Summary      Logout
// @Description  Revokes the current session token
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Logged out"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /logout [post]
func Logout(c *gin.Context) {
	m, ok := getSessionsOrRespond(c)
	if !ok {
		return
	}
	if err := m.Logout(c.Request.Context(), middleware.SessionToken(c), middleware.ClientInfo(c)); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to logout", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Logged out"})
}

// Me godoc
// @Summary      Current user
// @Description  Returns the profile of the session owner with a freshly read role
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=model.User}
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /me [get]
func Me(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile retrieved", Data: p.User})
}

// CompleteProfile godoc
// @Summary      Complete profile
// @Description  Sets first name, last name and phone of the session owner
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.ProfileUpdate true "Profile"
// @Success      200 {object} util.APIResponse "Profile updated"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Router       /me/profile [patch]
func CompleteProfile(c *gin.Context) {
	var req model.ProfileUpdate
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Users.CompleteProfile(c.Request.Context(), callerUID(c), req); err != nil {
		respondStoreError(c, "Failed to update profile", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile updated"})
}
