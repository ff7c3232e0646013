package view

import (
	"github.com/ariebrainware/dentara-clinic/model"
)

// DoctorKPIs are a doctor's appointment counts for one day.
type DoctorKPIs struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	CheckedIn int `json:"checked_in"`
	Cancelled int `json:"cancelled"`
	NoShows   int `json:"no_shows"`
}

// ComputeDoctorKPIs counts appts. Pending includes Confirmed.
func ComputeDoctorKPIs(appts []model.Appointment) DoctorKPIs {
	k := DoctorKPIs{Total: len(appts)}
	for _, a := range appts {
		switch a.Status.Canonical() {
		case model.StatusCompleted:
			k.Completed++
		case model.StatusPending, model.StatusConfirmed:
			k.Pending++
		case model.StatusInProgress:
			k.CheckedIn++
		case model.StatusCancelled:
			k.Cancelled++
		case model.StatusNoShow:
			k.NoShows++
		}
	}
	return k
}

// ScheduleStats are the summary cards of a doctor's schedule.
type ScheduleStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// ComputeScheduleStats counts appts. Cancelled includes no-shows.
func ComputeScheduleStats(appts []model.Appointment) ScheduleStats {
	s := ScheduleStats{Total: len(appts)}
	for _, a := range appts {
		switch a.Status.Canonical() {
		case model.StatusPending, model.StatusConfirmed:
			s.Pending++
		case model.StatusCompleted:
			s.Completed++
		case model.StatusCancelled, model.StatusNoShow:
			s.Cancelled++
		}
	}
	return s
}

// ClinicStats are the clinic-wide cards and the per-status chart.
type ClinicStats struct {
	Total     int                             `json:"total"`
	CheckedIn int                             `json:"checked_in"`
	Cancelled int                             `json:"cancelled"`
	Pending   int                             `json:"pending"`
	ByStatus  map[model.AppointmentStatus]int `json:"by_status"`
}

func ComputeClinicStats(appts []model.Appointment) ClinicStats {
	s := ClinicStats{Total: len(appts), ByStatus: make(map[model.AppointmentStatus]int, len(model.AppointmentStatuses))}
	for _, st := range model.AppointmentStatuses {
		s.ByStatus[st] = 0
	}
	for _, a := range appts {
		s.ByStatus[a.Status.Canonical()]++
	}
	s.CheckedIn = s.ByStatus[model.StatusInProgress]
	s.Cancelled = s.ByStatus[model.StatusCancelled]
	s.Pending = s.ByStatus[model.StatusPending]
	return s
}

// NoShowSummary counts the no-shows of one date by follow-up state.
type NoShowSummary struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Rebooked  int    `json:"rebooked"`
	Escalated int    `json:"escalated"`
	Open      int    `json:"open"`
}

// SummarizeNoShows counts appointments with status No-Show on date.
// Other statuses and other dates are ignored.
func SummarizeNoShows(appts []model.Appointment, date string) NoShowSummary {
	s := NoShowSummary{Date: date}
	for _, a := range appts {
		if a.Status.Canonical() != model.StatusNoShow || a.Date != date {
			continue
		}
		s.Total++
		switch a.ActionStatus.Canonical() {
		case model.ActionRebooked:
			s.Rebooked++
		case model.ActionEscalated:
			s.Escalated++
		default:
			s.Open++
		}
	}
	return s
}

// TaskSummary counts tasks per status and priority.
type TaskSummary struct {
	Total      int                      `json:"total"`
	ByStatus   map[model.TaskStatus]int `json:"by_status"`
	ByPriority map[model.Priority]int   `json:"by_priority"`
}

func SummarizeTasks(tasks []model.Task) TaskSummary {
	s := TaskSummary{
		Total:      len(tasks),
		ByStatus:   map[model.TaskStatus]int{model.TaskPending: 0, model.TaskCompleted: 0},
		ByPriority: make(map[model.Priority]int, len(model.Priorities)),
	}
	for _, p := range model.Priorities {
		s.ByPriority[p] = 0
	}
	for _, t := range tasks {
		s.ByStatus[t.Status.Canonical()]++
		s.ByPriority[t.Priority.Canonical()]++
	}
	return s
}
