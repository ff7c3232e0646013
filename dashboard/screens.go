package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/view"
)

// Screen names.
const (
	StaffHome           = "staff/home"
	StaffAppointments   = "staff/appointments"
	StaffCheckin        = "staff/checkin-cancellations"
	StaffNoShows        = "staff/no-shows"
	StaffTasks          = "staff/tasks"
	StaffTaskSummary    = "staff/tasks/summary"
	StaffPatients       = "staff/patients"
	DoctorHome          = "doctor/home"
	DoctorSchedule      = "doctor/schedule"
	DoctorKPIs          = "doctor/kpis"
	DoctorPatients      = "doctor/patients"
	ManagerKPIs         = "manager/kpis"
	ManagerNoShows      = "manager/no-shows"
	ManagerAppointments = "manager/appointments"
)

var ErrUnknownScreen = errors.New("unknown screen")

// Params are the filters and the caller of a screen request.
type Params struct {
	UserID   string `form:"-"`
	Date     string `form:"date"`
	From     string `form:"from"`
	To       string `form:"to"`
	Query    string `form:"q"`
	Status   string `form:"status"`
	Action   string `form:"action"`
	DoctorID string `form:"doctor_id"`
	Priority string `form:"priority"`
	Sort     string `form:"sort"`
	Desc     bool   `form:"desc"`
}

// Service builds screens over the repositories.
type Service struct {
	repos *repository.Registry
	now   func() time.Time
}

func NewService(repos *repository.Registry) *Service {
	return &Service{repos: repos, now: time.Now}
}

// SetClock overrides the source of "today". Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) dateOrToday(date string) string {
	if date != "" {
		return date
	}
	return s.now().Format(repository.DateLayout)
}

// Stream runs screen until ctx ends or emit fails, emitting a frame after
// every snapshot. Subscriptions are released before it returns.
func (s *Service) Stream(ctx context.Context, screen string, p Params, emit func(Frame) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	b, err := s.build(ctx, screen, p)
	if err != nil {
		return err
	}
	return b.run(ctx, emit)
}

var errFirstReady = errors.New("first ready frame")

// First returns the first ready frame of screen.
func (s *Service) First(ctx context.Context, screen string, p Params) (Frame, error) {
	var out Frame
	err := s.Stream(ctx, screen, p, func(f Frame) error {
		if f.Ready {
			out = f
			return errFirstReady
		}
		return nil
	})
	if errors.Is(err, errFirstReady) {
		return out, nil
	}
	return Frame{}, err
}

func (s *Service) build(ctx context.Context, screen string, p Params) (*board, error) {
	switch screen {
	case StaffHome:
		return s.staffHome(ctx), nil
	case StaffAppointments, ManagerAppointments:
		return s.appointments(ctx, screen, p), nil
	case StaffCheckin:
		return s.checkin(ctx, p), nil
	case StaffNoShows, ManagerNoShows:
		return s.noShows(ctx, screen, p), nil
	case StaffTasks:
		return s.tasks(ctx, p), nil
	case StaffTaskSummary:
		return s.taskSummary(ctx), nil
	case StaffPatients:
		return s.patients(ctx, p), nil
	case DoctorHome:
		return s.doctorHome(ctx, p)
	case DoctorSchedule:
		return s.doctorSchedule(ctx, p), nil
	case DoctorKPIs:
		return s.doctorKPIs(ctx, p), nil
	case DoctorPatients:
		return s.doctorPatients(ctx, p), nil
	case ManagerKPIs:
		return s.managerKPIs(ctx, p), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownScreen, screen)
}

func (s *Service) watchDoctors(ctx context.Context, b *board, dir *view.DoctorDirectory) {
	attach(ctx, b, s.repos.Users.SubscribeDoctors(ctx), func(us []model.User) {
		*dir = view.NewDoctorDirectory(us)
	})
}

// HomeData is the staff landing screen.
type HomeData struct {
	Date         string              `json:"date"`
	Stats        view.ClinicStats    `json:"stats"`
	Appointments []model.Appointment `json:"appointments"`
	PendingTasks []model.Task        `json:"pending_tasks"`
}

func (s *Service) staffHome(ctx context.Context) *board {
	date := s.dateOrToday("")
	b := newBoard(StaffHome)
	var appts []model.Appointment
	var tasks []model.Task
	dir := view.DoctorDirectory{}
	attach(ctx, b, s.repos.Appointments.SubscribeOn(ctx, date), func(v []model.Appointment) { appts = v })
	attach(ctx, b, s.repos.Tasks.SubscribeAll(ctx), func(v []model.Task) { tasks = v })
	s.watchDoctors(ctx, b, &dir)
	b.render = func() interface{} {
		rows := view.WithDoctorNames(appts, dir)
		p := view.NewPipeline[model.Appointment]()
		p.Replace(rows)
		p.SortBy(view.ByDateTime)
		pending := view.Filter(tasks, view.TaskStatusIs(string(model.TaskPending)))
		return HomeData{Date: date, Stats: view.ComputeClinicStats(rows), Appointments: p.Visible(), PendingTasks: pending}
	}
	return b
}

// AppointmentsData is a filtered appointment table. Total counts the
// unfiltered set.
type AppointmentsData struct {
	Rows    []model.Appointment `json:"rows"`
	Total   int                 `json:"total"`
	Visible int                 `json:"visible"`
}

func appointmentPipeline(p Params) *view.Pipeline[model.Appointment] {
	pl := view.NewPipeline[model.Appointment]()
	pl.SetFilter("text", view.MatchText(p.Query))
	pl.SetFilter("status", view.StatusIs(p.Status))
	pl.SetFilter("date", view.OnDate(p.Date))
	pl.SetFilter("range", view.Between(p.From, p.To))
	pl.SetFilter("doctor", view.ForDoctor(p.DoctorID))
	pl.SetFilter("action", view.ActionIs(p.Action))
	pl.SortBy(view.ByColumn(p.Sort, p.Desc))
	return pl
}

func (s *Service) appointments(ctx context.Context, screen string, p Params) *board {
	b := newBoard(screen)
	pl := appointmentPipeline(p)
	var appts []model.Appointment
	dir := view.DoctorDirectory{}
	attach(ctx, b, s.repos.Appointments.SubscribeAll(ctx), func(v []model.Appointment) { appts = v })
	s.watchDoctors(ctx, b, &dir)
	b.render = func() interface{} {
		pl.Replace(view.WithDoctorNames(appts, dir))
		rows := pl.Visible()
		return AppointmentsData{Rows: rows, Total: len(appts), Visible: len(rows)}
	}
	return b
}

// CheckinData is the check-in and cancellations board.
type CheckinData struct {
	Rows  []model.Appointment `json:"rows"`
	Stats view.ClinicStats    `json:"stats"`
}

func (s *Service) checkin(ctx context.Context, p Params) *board {
	b := newBoard(StaffCheckin)
	pl := appointmentPipeline(p)
	var appts []model.Appointment
	dir := view.DoctorDirectory{}
	attach(ctx, b, s.repos.Appointments.SubscribeCheckinCancellations(ctx), func(v []model.Appointment) { appts = v })
	s.watchDoctors(ctx, b, &dir)
	b.render = func() interface{} {
		pl.Replace(view.WithDoctorNames(appts, dir))
		return CheckinData{Rows: pl.Visible(), Stats: view.ComputeClinicStats(pl.All())}
	}
	return b
}

// NoShowsData is the no-show follow-up board of one date.
type NoShowsData struct {
	Rows    []model.Appointment `json:"rows"`
	Summary view.NoShowSummary  `json:"summary"`
}

func (s *Service) noShows(ctx context.Context, screen string, p Params) *board {
	date := s.dateOrToday(p.Date)
	b := newBoard(screen)
	pl := view.NewPipeline[model.Appointment]()
	pl.SetFilter("date", view.OnDate(date))
	pl.SetFilter("text", view.MatchText(p.Query))
	pl.SetFilter("action", view.ActionIs(p.Action))
	pl.SortBy(view.ByDateTime)
	var appts []model.Appointment
	dir := view.DoctorDirectory{}
	attach(ctx, b, s.repos.Appointments.SubscribeNoShows(ctx), func(v []model.Appointment) { appts = v })
	s.watchDoctors(ctx, b, &dir)
	b.render = func() interface{} {
		pl.Replace(view.WithDoctorNames(appts, dir))
		return NoShowsData{Rows: pl.Visible(), Summary: view.SummarizeNoShows(appts, date)}
	}
	return b
}

// TasksData is the filtered task list with counts over every task.
type TasksData struct {
	Rows    []model.Task     `json:"rows"`
	Summary view.TaskSummary `json:"summary"`
}

func (s *Service) tasks(ctx context.Context, p Params) *board {
	b := newBoard(StaffTasks)
	pl := view.NewPipeline[model.Task]()
	pl.SetFilter("text", view.TaskMatchText(p.Query))
	pl.SetFilter("status", view.TaskStatusIs(p.Status))
	pl.SetFilter("priority", view.TaskPriorityIs(p.Priority))
	pl.SortBy(view.ByDueDate)
	attach(ctx, b, s.repos.Tasks.SubscribeAll(ctx), func(v []model.Task) { pl.Replace(v) })
	b.render = func() interface{} {
		return TasksData{Rows: pl.Visible(), Summary: view.SummarizeTasks(pl.All())}
	}
	return b
}

func (s *Service) taskSummary(ctx context.Context) *board {
	b := newBoard(StaffTaskSummary)
	var tasks []model.Task
	attach(ctx, b, s.repos.Tasks.SubscribeAll(ctx), func(v []model.Task) { tasks = v })
	b.render = func() interface{} { return view.SummarizeTasks(tasks) }
	return b
}

// PatientsData is a patient list.
type PatientsData struct {
	Rows  []model.Patient `json:"rows"`
	Total int             `json:"total"`
}

func (s *Service) patients(ctx context.Context, p Params) *board {
	b := newBoard(StaffPatients)
	var patients []model.Patient
	dir := view.DoctorDirectory{}
	attach(ctx, b, s.repos.Patients.SubscribeAll(ctx), func(v []model.Patient) { patients = v })
	s.watchDoctors(ctx, b, &dir)
	b.render = func() interface{} {
		rows := view.SortPatients(view.SearchPatients(view.PatientsWithDoctorNames(patients, dir), p.Query))
		return PatientsData{Rows: rows, Total: len(patients)}
	}
	return b
}

// DoctorHomeData is a doctor's landing screen.
type DoctorHomeData struct {
	Doctor       *repository.DoctorInfo `json:"doctor"`
	Date         string                 `json:"date"`
	Appointments []model.Appointment    `json:"appointments"`
	Stats        view.ScheduleStats     `json:"stats"`
	Alerts       []model.Alert          `json:"alerts"`
}

func (s *Service) doctorHome(ctx context.Context, p Params) (*board, error) {
	info, err := s.repos.Users.DoctorInfo(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	date := s.dateOrToday("")
	b := newBoard(DoctorHome)
	var appts []model.Appointment
	var alerts []model.Alert
	attach(ctx, b, s.repos.Appointments.SubscribeForDoctorOn(ctx, p.UserID, date), func(v []model.Appointment) { appts = v })
	attach(ctx, b, s.repos.Alerts.SubscribeForDoctor(ctx, p.UserID), func(v []model.Alert) { alerts = v })
	b.render = func() interface{} {
		pl := view.NewPipeline[model.Appointment]()
		pl.Replace(appts)
		pl.SortBy(view.ByDateTime)
		return DoctorHomeData{Doctor: info, Date: date, Appointments: pl.Visible(), Stats: view.ComputeScheduleStats(appts), Alerts: alerts}
	}
	return b, nil
}

// ScheduleData is a doctor's schedule for one date.
type ScheduleData struct {
	Date         string              `json:"date"`
	Appointments []model.Appointment `json:"appointments"`
	Stats        view.ScheduleStats  `json:"stats"`
}

func (s *Service) doctorSchedule(ctx context.Context, p Params) *board {
	date := s.dateOrToday(p.Date)
	b := newBoard(DoctorSchedule)
	pl := view.NewPipeline[model.Appointment]()
	pl.SetFilter("text", view.MatchText(p.Query))
	pl.SetFilter("status", view.StatusIs(p.Status))
	pl.SortBy(view.ByDateTime)
	attach(ctx, b, s.repos.Appointments.SubscribeForDoctorOn(ctx, p.UserID, date), func(v []model.Appointment) { pl.Replace(v) })
	b.render = func() interface{} {
		return ScheduleData{Date: date, Appointments: pl.Visible(), Stats: view.ComputeScheduleStats(pl.All())}
	}
	return b
}

// DoctorKPIData is a doctor's KPI cards for one date.
type DoctorKPIData struct {
	Date string          `json:"date"`
	KPIs view.DoctorKPIs `json:"kpis"`
}

func (s *Service) doctorKPIs(ctx context.Context, p Params) *board {
	date := s.dateOrToday(p.Date)
	b := newBoard(DoctorKPIs)
	var appts []model.Appointment
	attach(ctx, b, s.repos.Appointments.SubscribeForDoctorOn(ctx, p.UserID, date), func(v []model.Appointment) { appts = v })
	b.render = func() interface{} {
		return DoctorKPIData{Date: date, KPIs: view.ComputeDoctorKPIs(appts)}
	}
	return b
}

// DoctorPatientsData lists a doctor's patients with the origin of each
// link.
type DoctorPatientsData struct {
	Rows []view.LinkedPatient `json:"rows"`
}

func (s *Service) doctorPatients(ctx context.Context, p Params) *board {
	b := newBoard(DoctorPatients)
	var appts []model.Appointment
	var patients []model.Patient
	attach(ctx, b, s.repos.Appointments.SubscribeForDoctor(ctx, p.UserID), func(v []model.Appointment) { appts = v })
	attach(ctx, b, s.repos.Patients.SubscribeAll(ctx), func(v []model.Patient) { patients = v })
	b.render = func() interface{} {
		byID := make(map[string]model.Patient, len(patients))
		var primary []model.Patient
		for _, pt := range patients {
			byID[pt.ID] = pt
			if pt.DoctorID == p.UserID {
				primary = append(primary, pt)
			}
		}
		var fromAppts []model.Patient
		for _, id := range repository.DistinctPatientIDs(appts) {
			if pt, ok := byID[id]; ok {
				fromAppts = append(fromAppts, pt)
			}
		}
		rows := view.MergeDoctorPatients(fromAppts, view.SortPatients(primary))
		if p.Query != "" {
			rows = view.Filter(rows, func(lp view.LinkedPatient) bool {
				return len(view.SearchPatients([]model.Patient{lp.Patient}, p.Query)) == 1
			})
		}
		return DoctorPatientsData{Rows: rows}
	}
	return b
}

// DoctorDayKPIs are one doctor's counts on the manager KPI screen.
type DoctorDayKPIs struct {
	DoctorName string `json:"doctor_name"`
	view.DoctorKPIs
}

// ManagerKPIData is the clinic-wide KPI screen of one date. PerDoctor is
// keyed by doctor_id.
type ManagerKPIData struct {
	Date      string                   `json:"date"`
	Clinic    view.ClinicStats         `json:"clinic"`
	PerDoctor map[string]DoctorDayKPIs `json:"per_doctor"`
	NoShows   view.NoShowSummary       `json:"no_shows"`
}

func (s *Service) managerKPIs(ctx context.Context, p Params) *board {
	date := s.dateOrToday(p.Date)
	b := newBoard(ManagerKPIs)
	var appts []model.Appointment
	dir := view.DoctorDirectory{}
	attach(ctx, b, s.repos.Appointments.SubscribeOn(ctx, date), func(v []model.Appointment) { appts = v })
	s.watchDoctors(ctx, b, &dir)
	b.render = func() interface{} {
		rows := view.WithDoctorNames(appts, dir)
		byDoctor := map[string][]model.Appointment{}
		for _, a := range rows {
			byDoctor[a.DoctorID] = append(byDoctor[a.DoctorID], a)
		}
		per := make(map[string]DoctorDayKPIs, len(byDoctor))
		for id, list := range byDoctor {
			per[id] = DoctorDayKPIs{DoctorName: list[0].DoctorName, DoctorKPIs: view.ComputeDoctorKPIs(list)}
		}
		return ManagerKPIData{Date: date, Clinic: view.ComputeClinicStats(rows), PerDoctor: per, NoShows: view.SummarizeNoShows(rows, date)}
	}
	return b
}
