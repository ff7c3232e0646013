package endpoint

import (
	"github.com/ariebrainware/dentara-clinic/dashboard"
	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/gin-gonic/gin"
)

var screens = []string{
	dashboard.StaffHome,
	dashboard.StaffAppointments,
	dashboard.StaffCheckin,
	dashboard.StaffNoShows,
	dashboard.StaffTasks,
	dashboard.StaffTaskSummary,
	dashboard.StaffPatients,
	dashboard.DoctorHome,
	dashboard.DoctorSchedule,
	dashboard.DoctorKPIs,
	dashboard.DoctorPatients,
	dashboard.ManagerKPIs,
	dashboard.ManagerNoShows,
	dashboard.ManagerAppointments,
}

// RegisterRoutes mounts the public auth routes and the guarded dashboard
// and API routes. Services must already be injected on r.
func RegisterRoutes(r *gin.Engine) {
	limiter := middleware.RateLimiter(middleware.RateLimitConfig{})
	r.GET("/login", LoginPage)
	r.POST("/login", limiter, Login)
	r.POST("/signup", limiter, Signup)
	r.GET("/token/validate", middleware.ValidateLoginToken(), ValidateToken)

	g := r.Group("", middleware.RouteGuard())
	g.POST("/logout", Logout)
	g.GET("/me", Me)
	g.PATCH("/me/profile", CompleteProfile)

	g.GET("/staff-dashboard", ShowScreen(dashboard.StaffHome))
	g.GET("/doctor-dashboard", ShowScreen(dashboard.DoctorHome))
	g.GET("/manager-dashboard", ShowScreen(dashboard.ManagerKPIs))
	for _, screen := range screens {
		path := dashboardPath(screen)
		g.GET(path, ShowScreen(screen))
		g.GET(path+"/stream", StreamScreen(screen))
	}

	api := g.Group("/api")
	api.GET("/appointments", ListAppointments)
	api.POST("/appointments", CreateAppointment)
	api.GET("/appointments/:id", GetAppointment)
	api.PATCH("/appointments/:id", UpdateAppointment)
	api.DELETE("/appointments/:id", DeleteAppointment)
	api.PUT("/appointments/:id/status", UpdateAppointmentStatus)
	api.POST("/appointments/:id/rebook", RebookAppointment)
	api.POST("/appointments/:id/escalate", EscalateAppointment)

	api.GET("/patients", ListPatients)
	api.POST("/patients", CreatePatient)
	api.GET("/patients/:id", GetPatient)
	api.PATCH("/patients/:id", UpdatePatient)
	api.DELETE("/patients/:id", DeletePatient)
	api.GET("/patients/:id/treatments", ListTreatments)
	api.POST("/patients/:id/treatments", CreateTreatment)
	api.GET("/patients/:id/notes", ListClinicalNotes)
	api.POST("/patients/:id/notes", AddClinicalNote)
	api.DELETE("/treatments/:id", DeleteTreatment)

	api.GET("/doctors", ListDoctors)
	api.GET("/doctors/:id/patients", ListDoctorPatients)

	api.GET("/tasks", ListTasks)
	api.POST("/tasks", CreateTask)
	api.GET("/tasks/:id", GetTask)
	api.PATCH("/tasks/:id", UpdateTask)
	api.DELETE("/tasks/:id", DeleteTask)
	api.POST("/tasks/:id/toggle", ToggleTask)

	api.POST("/alerts", CreateAlert)
	api.POST("/alerts/:id/acknowledge", AcknowledgeAlert)

	api.GET("/users", ListUsers)
	api.GET("/users/:id", GetUserInfo)
	api.DELETE("/users/:id/sessions", RevokeUserSessions)
	api.GET("/security-logs", ListSecurityLogs)

	api.GET("/reports/no-shows", ExportNoShows)
	api.POST("/maintenance/repair-doctor-names", RepairDoctorNames)
}
