package endpoint

import (
	"fmt"

	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/ariebrainware/dentara-clinic/view"
	"github.com/gin-gonic/gin"
)

type appointmentListQuery struct {
	DoctorID  string `form:"doctor_id"`
	PatientID string `form:"patient_id"`
	Date      string `form:"date"`
	Status    string `form:"status"`
	Sort      string `form:"sort"`
	Desc      bool   `form:"desc"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required" example:"Checked In"`
}

type rebookRequest struct {
	Date string `json:"date" binding:"required" example:"2025-01-20"`
	Time string `json:"time" binding:"required" example:"10:30"`
}

// ListAppointments godoc
// @Summary      List appointments of a doctor or a patient
// @Description  One of doctor_id or patient_id is required. Rows are sorted by date and time unless sort names a column.
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        doctor_id query string false "Doctor uid"
// @Param        patient_id query string false "Patient id"
// @Param        date query string false "Only this date (YYYY-MM-DD)"
// @Param        status query string false "Status filter"
// @Param        sort query string false "Column: date|time|patient_name|doctor_name|status|reason"
// @Param        desc query bool false "Descending"
// @Success      200 {object} util.APIResponse{data=object} "Appointments retrieved"
// @Failure      400 {object} util.APIResponse "Missing filter"
// @Router       /api/appointments [get]
func ListAppointments(c *gin.Context) {
	var q appointmentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid query", Err: err})
		return
	}
	if q.DoctorID == "" && q.PatientID == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "doctor_id or patient_id is required", Err: fmt.Errorf("%w: missing filter", model.ErrInvalidValue)})
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var rows []model.Appointment
	var err error
	if q.PatientID != "" {
		rows, err = repos.Appointments.ByPatient(ctx, q.PatientID)
	} else {
		rows, err = repos.Appointments.ByDoctor(ctx, q.DoctorID)
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointments", Err: err})
		return
	}

	pl := view.NewPipeline[model.Appointment]()
	pl.Replace(rows)
	if q.PatientID != "" && q.DoctorID != "" {
		pl.SetFilter("doctor", view.ForDoctor(q.DoctorID))
	}
	if q.Date != "" {
		pl.SetFilter("date", view.OnDate(q.Date))
	}
	pl.SetFilter("status", view.StatusIs(q.Status))
	if q.Sort != "" {
		pl.SortBy(view.ByColumn(q.Sort, q.Desc))
	} else {
		pl.SortBy(view.ByDateTime)
	}
	visible := pl.Visible()

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: map[string]interface{}{"total": len(pl.All()), "total_fetched": len(visible), "appointments": visible},
	})
}

// GetAppointment godoc
// @Summary      Get an appointment
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment id"
// @Success      200 {object} util.APIResponse{data=model.Appointment}
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/appointments/{id} [get]
func GetAppointment(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	id := c.Param("id")
	a, err := repos.Appointments.Get(c.Request.Context(), id)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointment", Err: err})
		return
	}
	if a == nil {
		respondNotFound(c, "appointment", id)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment retrieved", Data: a})
}

// CreateAppointment godoc
// @Summary      Book an appointment
// @Description  Staff bookings start Pending. A doctor booking for themself starts Confirmed.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.Appointment true "Appointment"
// @Success      201 {object} util.APIResponse "Appointment created"
// @Failure      400 {object} util.APIResponse "Missing or malformed fields"
// @Router       /api/appointments [post]
func CreateAppointment(c *gin.Context) {
	var req model.Appointment
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var id string
	var err error
	if role, _ := middleware.GetRole(c); role == model.RoleDoctor {
		id, err = repos.Appointments.CreateForDoctor(ctx, callerUID(c), req)
	} else {
		id, err = repos.Appointments.Create(ctx, req)
	}
	if err != nil {
		respondStoreError(c, "Failed to create appointment", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Appointment created", Data: map[string]interface{}{"id": id}})
}

// UpdateAppointment godoc
// @Summary      Update appointment fields
// @Description  Partial update. Unknown fields or malformed values reject the whole patch.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment id"
// @Param        request body object true "Fields to change"
// @Success      200 {object} util.APIResponse "Appointment updated"
// @Failure      400 {object} util.APIResponse "Invalid patch"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/appointments/{id} [patch]
func UpdateAppointment(c *gin.Context) {
	var patch repository.Patch
	if !bindJSONOrRespond(c, &patch, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Appointments.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondStoreError(c, "Failed to update appointment", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment updated"})
}

// UpdateAppointmentStatus godoc
// @Summary      Set appointment status
// @Description  Any status may follow any other.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment id"
// @Param        request body statusRequest true "New status"
// @Success      200 {object} util.APIResponse "Status updated"
// @Failure      400 {object} util.APIResponse "Unknown status"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/appointments/{id}/status [put]
func UpdateAppointmentStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Appointments.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondStoreError(c, "Failed to update status", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Status updated"})
}

// RebookAppointment godoc
// @Summary      Rebook a no-show
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment id"
// @Param        request body rebookRequest true "New slot"
// @Success      200 {object} util.APIResponse "Appointment rebooked"
// @Failure      400 {object} util.APIResponse "Malformed slot"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/appointments/{id}/rebook [post]
func RebookAppointment(c *gin.Context) {
	var req rebookRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Appointments.Rebook(c.Request.Context(), c.Param("id"), req.Date, req.Time); err != nil {
		respondStoreError(c, "Failed to rebook appointment", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment rebooked"})
}

// EscalateAppointment godoc
// @Summary      Escalate a no-show
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment id"
// @Success      200 {object} util.APIResponse "Appointment escalated"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/appointments/{id}/escalate [post]
func EscalateAppointment(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Appointments.Escalate(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "Failed to escalate appointment", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment escalated"})
}

// DeleteAppointment godoc
// @Summary      Delete an appointment
// @Description  Deleting an absent appointment succeeds.
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Appointment id"
// @Success      200 {object} util.APIResponse "Appointment deleted"
// @Router       /api/appointments/{id} [delete]
func DeleteAppointment(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Appointments.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "Failed to delete appointment", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment deleted"})
}

// RepairDoctorNames godoc
// @Summary      Repair doctor name snapshots
// @Description  Fills doctor_name on appointments whose snapshot is empty, from the doctor's current profile.
// @Tags         Maintenance
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Repair finished"
// @Failure      500 {object} util.APIResponse "Repair failed"
// @Router       /api/maintenance/repair-doctor-names [post]
func RepairDoctorNames(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	n, err := repos.Appointments.RepairDenormalizedDoctorNames(c.Request.Context())
	util.LogDataRepair(callerUID(c), "repair-doctor-names", n)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Repair failed", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Repair finished", Data: map[string]interface{}{"updated": n}})
}
