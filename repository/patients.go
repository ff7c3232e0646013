package repository

import (
	"context"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/store"
	"github.com/ariebrainware/dentara-clinic/util"
	"golang.org/x/sync/errgroup"
)

// Patients accesses the patients collection.
type Patients struct {
	c     *store.Collection[model.Patient, *model.Patient]
	appts *Appointments
	users *Users
}

func normalizeName(s string) string {
	return util.NormalizeName(s)
}

func (r *Patients) SubscribeAll(ctx context.Context) *store.Subscription[model.Patient] {
	return r.c.Subscribe(ctx, store.Query{})
}

func (r *Patients) All(ctx context.Context) ([]model.Patient, error) {
	return r.c.Find(ctx, store.Query{})
}

func (r *Patients) Get(ctx context.Context, id string) (*model.Patient, error) {
	return r.c.Get(ctx, id)
}

// Create registers a patient. first_name, last_name, phone and doctor_id
// are required; doctor_name is filled from the doctor's profile when empty.
func (r *Patients) Create(ctx context.Context, p model.Patient) (string, error) {
	p.FirstName = normalizeName(p.FirstName)
	p.LastName = normalizeName(p.LastName)
	if err := p.Validate(); err != nil {
		return "", err
	}
	if p.DoctorName == "" {
		name, err := r.users.doctorName(ctx, p.DoctorID)
		if err != nil {
			return "", err
		}
		p.DoctorName = name
	}
	return r.c.Create(ctx, &p)
}

// Update merges a partial update. age accepts JSON numbers or numeric
// strings and is stored as an integer.
func (r *Patients) Update(ctx context.Context, id string, patch Patch) error {
	fields, err := fieldsFrom("patient", patientFields, patch)
	if err != nil {
		return err
	}
	return r.c.Update(ctx, id, fields)
}

func (r *Patients) Remove(ctx context.Context, id string) error {
	return r.c.Remove(ctx, id)
}

// ByPrimaryDoctor returns patients whose doctor_id hint names doctorID.
func (r *Patients) ByPrimaryDoctor(ctx context.Context, doctorID string) ([]model.Patient, error) {
	return r.c.Find(ctx, store.Where("doctor_id", doctorID))
}

// ByDoctor returns the patients doctorID has appointments with, in the
// order each patient first appears among those appointments. Patient ids
// that no longer resolve are skipped.
func (r *Patients) ByDoctor(ctx context.Context, doctorID string) ([]model.Patient, error) {
	appts, err := r.appts.ByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, DistinctPatientIDs(appts))
}

// DistinctPatientIDs lists the non-empty patient ids of appts in
// first-seen order.
func DistinctPatientIDs(appts []model.Appointment) []string {
	seen := make(map[string]struct{}, len(appts))
	ids := make([]string, 0, len(appts))
	for _, a := range appts {
		if a.PatientID == "" {
			continue
		}
		if _, dup := seen[a.PatientID]; dup {
			continue
		}
		seen[a.PatientID] = struct{}{}
		ids = append(ids, a.PatientID)
	}
	return ids
}

func (r *Patients) resolve(ctx context.Context, ids []string) ([]model.Patient, error) {
	found := make([]*model.Patient, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, id := range ids {
		g.Go(func() error {
			p, err := r.c.Get(gctx, id)
			if err != nil {
				return err
			}
			found[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.Patient, 0, len(ids))
	for _, p := range found {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}
