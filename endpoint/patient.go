package endpoint

import (
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/ariebrainware/dentara-clinic/view"
	"github.com/gin-gonic/gin"
)

// ListPatients godoc
// @Summary      List all patients
// @Description  Patients sorted by last name with doctor names resolved
// @Tags         Patient
// @Produce      json
// @Security     SessionToken
// @Param        q query string false "Search full name, phone or email"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/patients [get]
func ListPatients(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	all, err := repos.Patients.All(ctx)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patients", Err: err})
		return
	}
	docs, err := repos.Users.Doctors(ctx)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve doctors", Err: err})
		return
	}

	rows := view.SortPatients(view.SearchPatients(all, c.Query("q")))
	rows = view.PatientsWithDoctorNames(rows, view.NewDoctorDirectory(docs))
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: map[string]interface{}{"total": len(all), "total_fetched": len(rows), "patients": rows},
	})
}

// GetPatient godoc
// @Summary      Get a patient
// @Tags         Patient
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient id"
// @Success      200 {object} util.APIResponse{data=model.Patient}
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/patients/{id} [get]
func GetPatient(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	id := c.Param("id")
	p, err := repos.Patients.Get(c.Request.Context(), id)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patient", Err: err})
		return
	}
	if p == nil {
		respondNotFound(c, "patient", id)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient retrieved", Data: p})
}

// CreatePatient godoc
// @Summary      Register a patient
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.Patient true "Patient"
// @Success      201 {object} util.APIResponse "Patient created"
// @Failure      400 {object} util.APIResponse "Missing or malformed fields"
// @Router       /api/patients [post]
func CreatePatient(c *gin.Context) {
	var req model.Patient
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	id, err := repos.Patients.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, "Failed to create patient", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Patient created", Data: map[string]interface{}{"id": id}})
}

// UpdatePatient godoc
// @Summary      Update patient fields
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient id"
// @Param        request body object true "Fields to change"
// @Success      200 {object} util.APIResponse "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid patch"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/patients/{id} [patch]
func UpdatePatient(c *gin.Context) {
	var patch repository.Patch
	if !bindJSONOrRespond(c, &patch, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Patients.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondStoreError(c, "Failed to update patient", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient updated"})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Tags         Patient
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient id"
// @Success      200 {object} util.APIResponse "Patient deleted"
// @Router       /api/patients/{id} [delete]
func DeletePatient(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Patients.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "Failed to delete patient", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient deleted"})
}

// ListDoctors godoc
// @Summary      List doctors
// @Tags         Doctor
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=[]model.User}
// @Router       /api/doctors [get]
func ListDoctors(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	docs, err := repos.Users.Doctors(c.Request.Context())
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve doctors", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctors retrieved", Data: docs})
}

// ListDoctorPatients godoc
// @Summary      Patients of a doctor
// @Description  Patients seen in the doctor's appointments merged with those naming the doctor as primary. Each row tells which link it came from.
// @Tags         Doctor
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Doctor uid"
// @Success      200 {object} util.APIResponse{data=[]view.LinkedPatient}
// @Router       /api/doctors/{id}/patients [get]
func ListDoctorPatients(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	doctorID := c.Param("id")
	fromAppts, err := repos.Patients.ByDoctor(ctx, doctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patients", Err: err})
		return
	}
	primary, err := repos.Patients.ByPrimaryDoctor(ctx, doctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patients", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patients retrieved", Data: view.MergeDoctorPatients(fromAppts, primary)})
}
