// Package repository holds the entity access functions: typed reads,
// subscriptions and writes over the clinic collections.
package repository

import (
	"time"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/store"
)

// Collection names. They double as SQL table names.
const (
	UsersCollection        = "users"
	PatientsCollection     = "patients"
	AppointmentsCollection = "appointments"
	TasksCollection        = "tasks"
	AlertsCollection       = "alerts"
	TreatmentsCollection   = "treatments"
)

// DateLayout and TimeLayout are the stored formats of appointment slots.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Registry bundles the access functions of every collection. It is built
// once per process and injected where needed.
type Registry struct {
	Users        *Users
	Patients     *Patients
	Appointments *Appointments
	Tasks        *Tasks
	Alerts       *Alerts
	Treatments   *Treatments
}

type clock func() time.Time

func (c clock) today() string {
	return c().Format(DateLayout)
}

// New opens every collection on s.
func New(s *store.Store) *Registry {
	return NewWithClock(s, time.Now)
}

// NewWithClock is New with an explicit source of "today".
func NewWithClock(s *store.Store, now func() time.Time) *Registry {
	c := clock(now)
	users := &Users{c: store.Open[model.User](s, UsersCollection)}
	patientsC := store.Open[model.Patient](s, PatientsCollection)
	appts := &Appointments{c: store.Open[model.Appointment](s, AppointmentsCollection), patients: patientsC, users: users, now: c}
	patients := &Patients{c: patientsC, appts: appts, users: users}
	return &Registry{
		Users:        users,
		Patients:     patients,
		Appointments: appts,
		Tasks:        &Tasks{c: store.Open[model.Task](s, TasksCollection)},
		Alerts:       &Alerts{c: store.Open[model.Alert](s, AlertsCollection)},
		Treatments:   &Treatments{c: store.Open[model.Treatment](s, TreatmentsCollection), patients: patients, now: c},
	}
}
