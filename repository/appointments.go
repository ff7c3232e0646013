package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/store"
	"golang.org/x/sync/errgroup"
)

// Appointments accesses the appointments collection.
type Appointments struct {
	c        *store.Collection[model.Appointment, *model.Appointment]
	patients *store.Collection[model.Patient, *model.Patient]
	users    *Users
	now      clock
}

// CheckinBoardStatuses are the statuses shown on the check-in and
// cancellations board.
var CheckinBoardStatuses = []model.AppointmentStatus{model.StatusInProgress, model.StatusCancelled, model.StatusNoShow}

func (r *Appointments) SubscribeAll(ctx context.Context) *store.Subscription[model.Appointment] {
	return r.c.Subscribe(ctx, store.Query{})
}

// SubscribeOn streams the clinic-wide appointments of one date.
func (r *Appointments) SubscribeOn(ctx context.Context, date string) *store.Subscription[model.Appointment] {
	return r.c.Subscribe(ctx, store.Where("date", date).Order("time"))
}

// SubscribeForDoctorOn streams one doctor's appointments on date, ordered
// by time.
func (r *Appointments) SubscribeForDoctorOn(ctx context.Context, doctorID, date string) *store.Subscription[model.Appointment] {
	return r.c.Subscribe(ctx, store.Where("doctor_id", doctorID).Where("date", date).Order("time"))
}

// SubscribeForDoctor streams every appointment of one doctor.
func (r *Appointments) SubscribeForDoctor(ctx context.Context, doctorID string) *store.Subscription[model.Appointment] {
	return r.c.Subscribe(ctx, store.Where("doctor_id", doctorID))
}

func (r *Appointments) SubscribeForDoctorToday(ctx context.Context, doctorID string) *store.Subscription[model.Appointment] {
	return r.SubscribeForDoctorOn(ctx, doctorID, r.now.today())
}

// SubscribeCheckinCancellations streams appointments that are in progress,
// cancelled or no-shows.
func (r *Appointments) SubscribeCheckinCancellations(ctx context.Context) *store.Subscription[model.Appointment] {
	return r.c.Subscribe(ctx, store.Query{}.WhereIn("status", statusValues(CheckinBoardStatuses...)...))
}

// statusValues lists every stored spelling of statuses for an "in" filter.
func statusValues(statuses ...model.AppointmentStatus) []interface{} {
	spellings := model.StatusSpellings(statuses...)
	values := make([]interface{}, 0, len(spellings))
	for _, s := range spellings {
		values = append(values, s)
	}
	return values
}

// SubscribeNoShows streams every no-show appointment.
func (r *Appointments) SubscribeNoShows(ctx context.Context) *store.Subscription[model.Appointment] {
	return r.c.Subscribe(ctx, store.Query{}.WhereIn("status", statusValues(model.StatusNoShow)...))
}

func (r *Appointments) Get(ctx context.Context, id string) (*model.Appointment, error) {
	return r.c.Get(ctx, id)
}

func (r *Appointments) ByDoctor(ctx context.Context, doctorID string) ([]model.Appointment, error) {
	return r.c.Find(ctx, store.Where("doctor_id", doctorID))
}

func (r *Appointments) ByPatient(ctx context.Context, patientID string) ([]model.Appointment, error) {
	return r.c.Find(ctx, store.Where("patient_id", patientID))
}

// NoShowsOn returns the no-shows of one date.
func (r *Appointments) NoShowsOn(ctx context.Context, date string) ([]model.Appointment, error) {
	return r.c.Find(ctx, store.Where("date", date).WhereIn("status", statusValues(model.StatusNoShow)...))
}

// Create books an appointment made by staff. Status defaults to Pending.
func (r *Appointments) Create(ctx context.Context, a model.Appointment) (string, error) {
	return r.create(ctx, a, model.StatusPending)
}

// CreateForDoctor books an appointment a doctor adds to their own
// schedule. Status defaults to Confirmed.
func (r *Appointments) CreateForDoctor(ctx context.Context, doctorID string, a model.Appointment) (string, error) {
	a.DoctorID = doctorID
	return r.create(ctx, a, model.StatusConfirmed)
}

func (r *Appointments) create(ctx context.Context, a model.Appointment, def model.AppointmentStatus) (string, error) {
	a.PatientName = normalizeName(a.PatientName)
	a.ActionStatus = model.ActionNone
	if err := a.Validate(def); err != nil {
		return "", err
	}
	if a.PatientName == "" {
		name, err := r.patientName(ctx, a.PatientID)
		if err != nil {
			return "", err
		}
		a.PatientName = name
	}
	if a.DoctorName == "" {
		name, err := r.users.doctorName(ctx, a.DoctorID)
		if err != nil {
			return "", err
		}
		a.DoctorName = name
	}
	return r.c.Create(ctx, &a)
}

// patientName resolves the snapshot name of patientID. An unknown patient
// leaves the name empty.
func (r *Appointments) patientName(ctx context.Context, patientID string) (string, error) {
	p, err := r.patients.Get(ctx, patientID)
	if err != nil {
		return "", fmt.Errorf("resolve patient %s: %w", patientID, err)
	}
	if p == nil {
		return "", nil
	}
	return p.FullName(), nil
}

// Update merges a partial update. Only appointment fields are accepted.
func (r *Appointments) Update(ctx context.Context, id string, patch Patch) error {
	fields, err := fieldsFrom("appointment", appointmentFields, patch)
	if err != nil {
		return err
	}
	return r.c.Update(ctx, id, fields)
}

// UpdateStatus sets the primary status. Any canonical status may follow
// any other; transitions are not checked.
func (r *Appointments) UpdateStatus(ctx context.Context, id string, status string) error {
	st, err := model.ParseAppointmentStatus(status)
	if err != nil {
		return &model.ValidationError{Entity: "appointment", Fields: []string{"status"}}
	}
	return r.c.Update(ctx, id, store.Fields{"status": st})
}

// Rebook moves an appointment to a new slot and marks it Rebooked in one
// single-document write. The primary status is left alone.
func (r *Appointments) Rebook(ctx context.Context, id, date, slot string) error {
	var bad []string
	if _, err := time.Parse(DateLayout, date); err != nil {
		bad = append(bad, "date")
	}
	if _, err := time.Parse(TimeLayout, slot); err != nil {
		bad = append(bad, "time")
	}
	if len(bad) > 0 {
		return &model.ValidationError{Entity: "appointment", Fields: bad}
	}
	return r.c.Update(ctx, id, store.Fields{
		"date":          date,
		"time":          slot,
		"action_status": model.ActionRebooked,
	})
}

// Escalate marks a no-show as escalated (patient unreachable).
func (r *Appointments) Escalate(ctx context.Context, id string) error {
	return r.c.Update(ctx, id, store.Fields{"action_status": model.ActionEscalated})
}

func (r *Appointments) Remove(ctx context.Context, id string) error {
	return r.c.Remove(ctx, id)
}

// RepairDenormalizedDoctorNames fills doctor_name on appointments that have
// a doctor_id but no name, when that id belongs to a doctor with a name.
// It returns how many appointments were updated.
func (r *Appointments) RepairDenormalizedDoctorNames(ctx context.Context) (int, error) {
	names, err := r.users.DoctorNames(ctx)
	if err != nil {
		return 0, err
	}
	appts, err := r.c.Find(ctx, store.Query{})
	if err != nil {
		return 0, err
	}

	var updated int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, a := range appts {
		if a.DoctorID == "" || a.DoctorName != "" {
			continue
		}
		name, ok := names[a.DoctorID]
		if !ok {
			continue
		}
		id := a.ID
		g.Go(func() error {
			if err := r.c.Update(gctx, id, store.Fields{"doctor_name": name}); err != nil {
				return err
			}
			atomic.AddInt64(&updated, 1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(updated), fmt.Errorf("repair doctor names: %w", err)
	}
	return int(updated), nil
}
