package view

import (
	"cmp"
	"strings"

	"github.com/ariebrainware/dentara-clinic/model"
)

type AppointmentPredicate = Predicate[model.Appointment]

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

// MatchText matches q case-insensitively against patient name, doctor name
// and reason. An empty q matches everything.
func MatchText(q string) AppointmentPredicate {
	q = strings.ToLower(strings.TrimSpace(q))
	return func(a model.Appointment) bool {
		if q == "" {
			return true
		}
		return containsFold(a.PatientName, q) || containsFold(a.DoctorName, q) || containsFold(a.Reason, q)
	}
}

// StatusIs matches the canonical form of status, so "checked-in" and
// "In Progress" select the same rows. An empty or unknown status matches
// everything.
func StatusIs(status string) AppointmentPredicate {
	st, err := model.ParseAppointmentStatus(status)
	return func(a model.Appointment) bool {
		if status == "" || err != nil {
			return true
		}
		return a.Status.Canonical() == st
	}
}

// StatusIn matches any of statuses.
func StatusIn(statuses ...model.AppointmentStatus) AppointmentPredicate {
	return func(a model.Appointment) bool {
		for _, st := range statuses {
			if a.Status.Canonical() == st {
				return true
			}
		}
		return false
	}
}

// OnDate matches one date. An empty date matches everything.
func OnDate(date string) AppointmentPredicate {
	return func(a model.Appointment) bool {
		return date == "" || a.Date == date
	}
}

// Between matches dates in [from, to]. Either bound may be empty.
// Appointments without a date never match a bounded range.
func Between(from, to string) AppointmentPredicate {
	return func(a model.Appointment) bool {
		if from == "" && to == "" {
			return true
		}
		if a.Date == "" {
			return false
		}
		return (from == "" || a.Date >= from) && (to == "" || a.Date <= to)
	}
}

func ForDoctor(doctorID string) AppointmentPredicate {
	return func(a model.Appointment) bool {
		return doctorID == "" || a.DoctorID == doctorID
	}
}

// ActionIs matches the no-show follow-up status. "open" selects rows with
// no action yet.
func ActionIs(action string) AppointmentPredicate {
	if strings.EqualFold(action, "open") {
		return func(a model.Appointment) bool { return a.ActionStatus.Canonical() == model.ActionNone }
	}
	st, err := model.ParseActionStatus(action)
	return func(a model.Appointment) bool {
		if action == "" || err != nil {
			return true
		}
		return a.ActionStatus.Canonical() == st
	}
}

// compareMissingLast orders empty strings after any non-empty value.
func compareMissingLast(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return cmp.Compare(a, b)
}

// ByDateTime orders by date then time, ascending. Missing dates and times
// sort last.
func ByDateTime(a, b model.Appointment) int {
	if c := compareMissingLast(a.Date, b.Date); c != 0 {
		return c
	}
	return compareMissingLast(a.Time, b.Time)
}

// SortableColumns are the appointment columns ByColumn accepts.
var SortableColumns = []string{"date", "time", "patient_name", "doctor_name", "reason", "room", "status", "action_status"}

func column(a model.Appointment, name string) string {
	switch name {
	case "time":
		return a.Time
	case "patient_name":
		return a.PatientName
	case "doctor_name":
		return a.DoctorName
	case "reason":
		return a.Reason
	case "room":
		return a.Room
	case "status":
		return string(a.Status.Canonical())
	case "action_status":
		return string(a.ActionStatus)
	}
	return a.Date
}

// ByColumn compares case-insensitively on one column, then exactly, then
// by date and time. Unknown columns sort by date and time.
func ByColumn(name string, desc bool) func(a, b model.Appointment) int {
	return func(a, b model.Appointment) int {
		var c int
		if name == "date" || name == "" {
			c = ByDateTime(a, b)
		} else {
			x, y := column(a, name), column(b, name)
			c = compareMissingLast(strings.ToLower(x), strings.ToLower(y))
			if c == 0 {
				c = cmp.Compare(x, y)
			}
			if c == 0 {
				c = ByDateTime(a, b)
			}
		}
		if desc {
			return -c
		}
		return c
	}
}
