package store

import (
	"context"
	"fmt"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreBackend[T any, P Record[T]] struct {
	client *firestore.Client
	name   string
}

func (f *firestoreBackend[T, P]) query(q Query) firestore.Query {
	fq := f.client.Collection(f.name).Query
	for _, flt := range q.Filters {
		switch flt.Op {
		case OpIn:
			fq = fq.Where(flt.Field, "in", flt.Value)
		default:
			fq = fq.Where(flt.Field, "==", flt.Value)
		}
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	return fq
}

func (f *firestoreBackend[T, P]) decode(snap *firestore.DocumentSnapshot) (T, error) {
	var rec T
	if err := snap.DataTo(&rec); err != nil {
		return rec, fmt.Errorf("while unmarshaling %s/%s: %w", f.name, snap.Ref.ID, err)
	}
	P(&rec).Base().ID = snap.Ref.ID
	normalize(&rec)
	return rec, nil
}

func (f *firestoreBackend[T, P]) find(ctx context.Context, q Query) ([]T, error) {
	if values, ok := inValues(q); ok && len(values) == 0 {
		return []T{}, nil
	}

	recs := []T{}
	it := f.query(q).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("while iterating %s: %w", f.name, err)
		}
		rec, err := f.decode(snap)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (f *firestoreBackend[T, P]) get(ctx context.Context, id string) (*T, error) {
	snap, err := f.client.Collection(f.name).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec, err := f.decode(snap)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (f *firestoreBackend[T, P]) create(ctx context.Context, rec *T) error {
	id := P(rec).Base().ID
	_, err := f.client.Collection(f.name).Doc(id).Create(ctx, rec)
	return err
}

func (f *firestoreBackend[T, P]) update(ctx context.Context, id string, fields Fields) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}

	_, err := f.client.Collection(f.name).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (f *firestoreBackend[T, P]) remove(ctx context.Context, id string) error {
	_, err := f.client.Collection(f.name).Doc(id).Delete(ctx)
	return err
}

func (f *firestoreBackend[T, P]) watch(ctx context.Context, q Query) (<-chan struct{}, func()) {
	ticks := make(chan struct{}, 1)
	it := f.query(q).Snapshots(ctx)
	go func() {
		defer close(ticks)
		first := true
		for {
			_, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					log.Printf("store: firestore listener on %s failed: %v", f.name, err)
				}
				return
			}
			// The subscription already read the initial state itself.
			if first {
				first = false
				continue
			}
			select {
			case ticks <- struct{}{}:
			default:
			}
		}
	}()
	return ticks, it.Stop
}

func inValues(q Query) ([]interface{}, bool) {
	for _, flt := range q.Filters {
		if flt.Op == OpIn {
			values, _ := flt.Value.([]interface{})
			return values, true
		}
	}
	return nil, false
}
