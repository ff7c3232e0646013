package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ariebrainware/dentara-clinic/model"
)

// UnknownDoctor is shown when a doctor id cannot be resolved yet.
const UnknownDoctor = "Unknown"

// DoctorDirectory maps doctor uid to full name.
type DoctorDirectory map[string]string

// NewDoctorDirectory indexes the named doctors among users.
func NewDoctorDirectory(users []model.User) DoctorDirectory {
	dir := make(DoctorDirectory, len(users))
	for _, u := range users {
		if u.Role != model.RoleDoctor {
			continue
		}
		if n := u.FullName(); n != "" {
			dir[u.ID] = n
		}
	}
	return dir
}

// Name resolves a doctor from the stored snapshot, then the directory,
// and falls back to UnknownDoctor. The directory may lag behind the
// appointments stream.
func (d DoctorDirectory) Name(doctorID, snapshot string) string {
	if snapshot != "" {
		return snapshot
	}
	if n, ok := d[doctorID]; ok {
		return n
	}
	return UnknownDoctor
}

// WithDoctorNames returns appts with doctor_name resolved for display.
func WithDoctorNames(appts []model.Appointment, dir DoctorDirectory) []model.Appointment {
	out := slices.Clone(appts)
	for i := range out {
		out[i].DoctorName = dir.Name(out[i].DoctorID, out[i].DoctorName)
	}
	return out
}

// PatientsWithDoctorNames resolves doctor_name on each patient.
func PatientsWithDoctorNames(ps []model.Patient, dir DoctorDirectory) []model.Patient {
	out := slices.Clone(ps)
	for i := range out {
		out[i].DoctorName = dir.Name(out[i].DoctorID, out[i].DoctorName)
	}
	return out
}

// SearchPatients matches q case-insensitively against full name, phone and
// email.
func SearchPatients(ps []model.Patient, q string) []model.Patient {
	q = strings.ToLower(strings.TrimSpace(q))
	return Filter(ps, func(p model.Patient) bool {
		if q == "" {
			return true
		}
		return containsFold(p.FullName(), q) || containsFold(p.Phone, q) || containsFold(p.Email, q)
	})
}

// ByLastName orders patients by last name then first name, ignoring case.
func ByLastName(a, b model.Patient) int {
	if c := cmp.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)); c != 0 {
		return c
	}
	return cmp.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName))
}

// SortPatients returns a copy of ps ordered by ByLastName.
func SortPatients(ps []model.Patient) []model.Patient {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, ByLastName)
	return out
}

// LinkSource tells where a doctor-patient link comes from.
type LinkSource string

const (
	LinkAppointment LinkSource = "appointment"
	LinkPrimary     LinkSource = "primary"
	LinkBoth        LinkSource = "both"
)

// LinkedPatient is a patient on a doctor's list with the origin of the
// link.
type LinkedPatient struct {
	model.Patient
	Source LinkSource `json:"source"`
}

// MergeDoctorPatients unions the appointment-derived patients (the
// authoritative linkage) with the patients naming the doctor as primary.
// Appointment-derived patients come first in their given order, then
// primary-only patients in theirs.
func MergeDoctorPatients(fromAppointments, primary []model.Patient) []LinkedPatient {
	isPrimary := make(map[string]bool, len(primary))
	for _, p := range primary {
		isPrimary[p.ID] = true
	}

	seen := make(map[string]bool, len(fromAppointments)+len(primary))
	out := make([]LinkedPatient, 0, len(fromAppointments)+len(primary))
	for _, p := range fromAppointments {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		src := LinkAppointment
		if isPrimary[p.ID] {
			src = LinkBoth
		}
		out = append(out, LinkedPatient{Patient: p, Source: src})
	}
	for _, p := range primary {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, LinkedPatient{Patient: p, Source: LinkPrimary})
	}
	return out
}
