package repository

import (
	"context"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/store"
)

// Alerts accesses doctor alerts.
type Alerts struct {
	c *store.Collection[model.Alert, *model.Alert]
}

// SubscribeForDoctor streams the unacknowledged alerts of one doctor.
func (r *Alerts) SubscribeForDoctor(ctx context.Context, doctorID string) *store.Subscription[model.Alert] {
	return r.c.Subscribe(ctx, store.Where("doctor_id", doctorID).Where("acknowledged", false))
}

func (r *Alerts) Get(ctx context.Context, id string) (*model.Alert, error) {
	return r.c.Get(ctx, id)
}

func (r *Alerts) Create(ctx context.Context, a model.Alert) (string, error) {
	a.Acknowledged = false
	if err := a.Validate(); err != nil {
		return "", err
	}
	return r.c.Create(ctx, &a)
}

func (r *Alerts) Acknowledge(ctx context.Context, id string) error {
	return r.c.Update(ctx, id, store.Fields{"acknowledged": true})
}
