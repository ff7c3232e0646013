package util

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIResponse is the JSON envelope of every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

func errorResponse(params APIErrorParams) APIResponse {
	resp := APIResponse{Msg: params.Msg, Data: map[string]interface{}{}}
	if params.Err != nil {
		resp.Error = params.Err.Error()
	}
	return resp
}

// CallErrorNotFound responds 404.
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, errorResponse(params))
}

// CallUserError responds 400 for errors caused by the request.
func CallUserError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusBadRequest, errorResponse(params))
}

// CallServerError responds 500.
func CallServerError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusInternalServerError, errorResponse(params))
}

// CallUserNotAuthorized responds 401 when no valid session is presented.
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusUnauthorized, errorResponse(params))
}

// CallTooManyRequests responds 429.
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusTooManyRequests, errorResponse(params))
}

// CallSuccessOK responds 200 with data.
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Msg: params.Msg, Data: params.Data})
}

// CallCreated responds 201 with data, typically the new record id.
func CallCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Msg: params.Msg, Data: params.Data})
}

// CallUserFound responds 307 and points the client at location. The body
// never carries protected data.
func CallUserFound(c *gin.Context, location string, params APISuccessParams) {
	c.Header("Location", location)
	c.JSON(http.StatusTemporaryRedirect, APIResponse{Success: false, Msg: params.Msg, Data: params.Data})
}

// NormalizeName trims a name and collapses internal runs of whitespace.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
