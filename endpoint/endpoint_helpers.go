package endpoint

import (
	"errors"
	"fmt"

	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/session"
	"github.com/ariebrainware/dentara-clinic/store"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getReposOrRespond(c *gin.Context) (*repository.Registry, bool) {
	repos := middleware.GetRepos(c)
	if repos == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Data store not available", Err: fmt.Errorf("repositories missing from context")})
		return nil, false
	}
	return repos, true
}

func getSessionsOrRespond(c *gin.Context) (*session.Manager, bool) {
	m := middleware.GetSessions(c)
	if m == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Session service not available", Err: fmt.Errorf("session manager missing from context")})
		return nil, false
	}
	return m, true
}

// respondStoreError maps store and validation errors onto the response
// envelope: bad input is 400, a write to an absent record is 404.
func respondStoreError(c *gin.Context, msg string, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, model.ErrInvalidValue):
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
	case errors.Is(err, store.ErrNotFound):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: msg, Err: err})
	default:
		util.CallServerError(c, util.APIErrorParams{Msg: msg, Err: err})
	}
}

func respondNotFound(c *gin.Context, entity, id string) {
	util.CallErrorNotFound(c, util.APIErrorParams{
		Msg: fmt.Sprintf("%s not found", entity),
		Err: fmt.Errorf("%s %s: %w", entity, id, store.ErrNotFound),
	})
}

func callerUID(c *gin.Context) string {
	uid, _ := middleware.GetUserID(c)
	return uid
}
