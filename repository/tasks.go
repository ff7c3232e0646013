package repository

import (
	"context"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/store"
)

// Tasks accesses the staff task list.
type Tasks struct {
	c *store.Collection[model.Task, *model.Task]
}

func (r *Tasks) SubscribeAll(ctx context.Context) *store.Subscription[model.Task] {
	return r.c.Subscribe(ctx, store.Query{})
}

func (r *Tasks) All(ctx context.Context) ([]model.Task, error) {
	return r.c.Find(ctx, store.Query{})
}

func (r *Tasks) Get(ctx context.Context, id string) (*model.Task, error) {
	return r.c.Get(ctx, id)
}

// Create adds a task with status Pending.
func (r *Tasks) Create(ctx context.Context, t model.Task) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return r.c.Create(ctx, &t)
}

func (r *Tasks) Update(ctx context.Context, id string, patch Patch) error {
	fields, err := fieldsFrom("task", taskFields, patch)
	if err != nil {
		return err
	}
	return r.c.Update(ctx, id, fields)
}

func (r *Tasks) SetStatus(ctx context.Context, id string, status string) error {
	st, err := model.ParseTaskStatus(status)
	if err != nil {
		return &model.ValidationError{Entity: "task", Fields: []string{"status"}}
	}
	return r.c.Update(ctx, id, store.Fields{"status": st})
}

// Toggle flips a task between Pending and Completed and returns the new
// status.
func (r *Tasks) Toggle(ctx context.Context, id string) (model.TaskStatus, error) {
	t, err := r.c.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", &store.WriteError{Op: "update", Collection: r.c.Name(), ID: id, Err: store.ErrNotFound}
	}
	next := t.Status.Toggled()
	if err := r.c.Update(ctx, id, store.Fields{"status": next}); err != nil {
		return "", err
	}
	return next, nil
}

func (r *Tasks) Remove(ctx context.Context, id string) error {
	return r.c.Remove(ctx, id)
}
