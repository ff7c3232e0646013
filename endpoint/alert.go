package endpoint

import (
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

// CreateAlert godoc
// @Summary      Raise an alert for a doctor
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.Alert true "Alert"
// @Success      201 {object} util.APIResponse "Alert created"
// @Failure      400 {object} util.APIResponse "Missing fields"
// @Router       /api/alerts [post]
func CreateAlert(c *gin.Context) {
	var req model.Alert
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	id, err := repos.Alerts.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, "Failed to create alert", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Alert created", Data: map[string]interface{}{"id": id}})
}

// AcknowledgeAlert godoc
// @Summary      Acknowledge an alert
// @Description  Acknowledged alerts leave the doctor's home screen
// @Tags         Alert
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Alert id"
// @Success      200 {object} util.APIResponse "Alert acknowledged"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/alerts/{id}/acknowledge [post]
func AcknowledgeAlert(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Alerts.Acknowledge(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "Failed to acknowledge alert", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Alert acknowledged"})
}
