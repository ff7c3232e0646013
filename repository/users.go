package repository

import (
	"context"
	"fmt"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/store"
	"github.com/ariebrainware/dentara-clinic/util"
)

// Users accesses clinic profiles, keyed by identity uid.
type Users struct {
	c *store.Collection[model.User, *model.User]
}

// Get point-reads the profile of uid. The role is never cached; every
// call reads the stored record.
func (r *Users) Get(ctx context.Context, uid string) (*model.User, error) {
	return r.c.Get(ctx, uid)
}

// CreateProfile writes the User record created at signup. The role is
// fixed from here on.
func (r *Users) CreateProfile(ctx context.Context, uid string, role model.Role, email string) (*model.User, error) {
	u := &model.User{Role: role, Email: email}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if _, err := r.c.CreateWithID(ctx, uid, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CompleteProfile updates names and phone only.
func (r *Users) CompleteProfile(ctx context.Context, uid string, upd model.ProfileUpdate) error {
	return r.c.Update(ctx, uid, store.Fields{
		"first_name": util.NormalizeName(upd.FirstName),
		"last_name":  util.NormalizeName(upd.LastName),
		"phone":      upd.Phone,
	})
}

func (r *Users) All(ctx context.Context) ([]model.User, error) {
	return r.c.Find(ctx, store.Query{}.Order("last_name"))
}

func (r *Users) doctorsQuery() store.Query {
	return store.Where("role", string(model.RoleDoctor)).Order("last_name")
}

// SubscribeDoctors streams every user with role doctor.
func (r *Users) SubscribeDoctors(ctx context.Context) *store.Subscription[model.User] {
	return r.c.Subscribe(ctx, r.doctorsQuery())
}

func (r *Users) Doctors(ctx context.Context) ([]model.User, error) {
	return r.c.Find(ctx, r.doctorsQuery())
}

// DoctorNames maps doctor uid to full name, skipping doctors without one.
func (r *Users) DoctorNames(ctx context.Context) (map[string]string, error) {
	docs, err := r.Doctors(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(docs))
	for _, d := range docs {
		if n := d.FullName(); n != "" {
			names[d.ID] = n
		}
	}
	return names, nil
}

// DoctorInfo is the doctor header shown on doctor screens.
type DoctorInfo struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// DoctorInfo returns nil when uid is absent or not a doctor.
func (r *Users) DoctorInfo(ctx context.Context, uid string) (*DoctorInfo, error) {
	u, err := r.c.Get(ctx, uid)
	if err != nil || u == nil || u.Role != model.RoleDoctor {
		return nil, err
	}
	return &DoctorInfo{ID: u.ID, FullName: u.DisplayName(), Email: u.Email, Phone: u.Phone}, nil
}

// doctorName returns the name snapshot to store next to doctorID, or "" if
// doctorID is not a known doctor.
func (r *Users) doctorName(ctx context.Context, doctorID string) (string, error) {
	u, err := r.c.Get(ctx, doctorID)
	if err != nil {
		return "", fmt.Errorf("resolve doctor %s: %w", doctorID, err)
	}
	if u == nil || u.Role != model.RoleDoctor {
		return "", nil
	}
	return u.FullName(), nil
}
