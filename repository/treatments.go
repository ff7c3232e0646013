package repository

import (
	"context"
	"sort"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/store"
)

// Treatments accesses treatments and clinical notes. A clinical note is a
// treatment whose treatment field is model.ClinicalNote.
type Treatments struct {
	c        *store.Collection[model.Treatment, *model.Treatment]
	patients *Patients
	now      clock
}

func newestFirst(ts []model.Treatment) []model.Treatment {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Date > ts[j].Date })
	return ts
}

// ForPatient returns the patient's treatments, newest first, without
// clinical notes.
func (r *Treatments) ForPatient(ctx context.Context, patientID string) ([]model.Treatment, error) {
	all, err := r.c.Find(ctx, store.Where("patient_id", patientID))
	if err != nil {
		return nil, err
	}
	out := make([]model.Treatment, 0, len(all))
	for _, t := range all {
		if !t.IsClinicalNote() {
			out = append(out, t)
		}
	}
	return newestFirst(out), nil
}

// ClinicalNotesForPatient returns the patient's clinical notes, newest
// first.
func (r *Treatments) ClinicalNotesForPatient(ctx context.Context, patientID string) ([]model.Treatment, error) {
	notes, err := r.c.Find(ctx, store.Where("patient_id", patientID).Where("treatment", model.ClinicalNote))
	if err != nil {
		return nil, err
	}
	return newestFirst(notes), nil
}

// AddClinicalNote records a note dated today with status Completed.
func (r *Treatments) AddClinicalNote(ctx context.Context, patientID, doctorName, notes string) (string, error) {
	t := model.Treatment{
		PatientID: patientID,
		Doctor:    doctorName,
		Date:      r.now.today(),
		Treatment: model.ClinicalNote,
		Notes:     notes,
		Status:    "Completed",
	}
	if p, err := r.patients.Get(ctx, patientID); err != nil {
		return "", err
	} else if p != nil {
		t.PatientName = p.FullName()
	}
	return r.Create(ctx, t)
}

func (r *Treatments) Create(ctx context.Context, t model.Treatment) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return r.c.Create(ctx, &t)
}

func (r *Treatments) Remove(ctx context.Context, id string) error {
	return r.c.Remove(ctx, id)
}
