package endpoint

import (
	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
)

type clinicalNoteRequest struct {
	Notes string `json:"notes" binding:"required" example:"Sensitivity on 36, re-check in two weeks"`
}

// ListTreatments godoc
// @Summary      Treatments of a patient
// @Description  Newest first, clinical notes excluded
// @Tags         Treatment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient id"
// @Success      200 {object} util.APIResponse{data=[]model.Treatment}
// @Router       /api/patients/{id}/treatments [get]
func ListTreatments(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	ts, err := repos.Treatments.ForPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve treatments", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Treatments retrieved", Data: ts})
}

// CreateTreatment godoc
// @Summary      Record a treatment
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient id"
// @Param        request body model.Treatment true "Treatment"
// @Success      201 {object} util.APIResponse "Treatment created"
// @Failure      400 {object} util.APIResponse "Missing or malformed fields"
// @Router       /api/patients/{id}/treatments [post]
func CreateTreatment(c *gin.Context) {
	var req model.Treatment
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	req.PatientID = c.Param("id")
	id, err := repos.Treatments.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, "Failed to create treatment", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Treatment created", Data: map[string]interface{}{"id": id}})
}

// DeleteTreatment godoc
// @Summary      Delete a treatment or note
// @Tags         Treatment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Treatment id"
// @Success      200 {object} util.APIResponse "Treatment deleted"
// @Router       /api/treatments/{id} [delete]
func DeleteTreatment(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Treatments.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "Failed to delete treatment", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Treatment deleted"})
}

// ListClinicalNotes godoc
// @Summary      Clinical notes of a patient
// @Tags         Treatment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient id"
// @Success      200 {object} util.APIResponse{data=[]model.Treatment}
// @Router       /api/patients/{id}/notes [get]
func ListClinicalNotes(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	notes, err := repos.Treatments.ClinicalNotesForPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve notes", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Notes retrieved", Data: notes})
}

// AddClinicalNote godoc
// @Summary      Add a clinical note
// @Description  Dated today and signed with the caller's display name
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient id"
// @Param        request body clinicalNoteRequest true "Note"
// @Success      201 {object} util.APIResponse "Note added"
// @Router       /api/patients/{id}/notes [post]
func AddClinicalNote(c *gin.Context) {
	var req clinicalNoteRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	author := ""
	if p := middleware.GetPrincipal(c); p != nil && p.User != nil {
		author = p.User.DisplayName()
	}
	id, err := repos.Treatments.AddClinicalNote(c.Request.Context(), c.Param("id"), author, req.Notes)
	if err != nil {
		respondStoreError(c, "Failed to add note", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Note added", Data: map[string]interface{}{"id": id}})
}
