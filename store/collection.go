package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is satisfied by pointers to model types embedding model.Document.
type Record[T any] interface {
	*T
	Base() *model.Document
}

// normalizer is implemented by records whose enumerated fields have more
// than one stored spelling.
type normalizer interface {
	Normalize()
}

func normalize(rec interface{}) {
	if n, ok := rec.(normalizer); ok {
		n.Normalize()
	}
}

// backend is the per-collection driver contract.
type backend[T any] interface {
	find(ctx context.Context, q Query) ([]T, error)
	get(ctx context.Context, id string) (*T, error)
	create(ctx context.Context, rec *T) error
	update(ctx context.Context, id string, fields Fields) error
	remove(ctx context.Context, id string) error
	// watch returns a channel that ticks whenever the result of q may have
	// changed. The channel is closed if the underlying listener fails.
	watch(ctx context.Context, q Query) (<-chan struct{}, func())
}

// Store selects the driver shared by every collection opened from it.
type Store struct {
	db       *gorm.DB
	fs       *firestore.Client
	notifier Notifier
	now      func() time.Time
}

// NewSQL returns a Store backed by gorm. Writes are announced on notifier,
// which drives live subscriptions.
func NewSQL(db *gorm.DB, notifier Notifier) *Store {
	if notifier == nil {
		notifier = NewLocalNotifier()
	}
	return &Store{db: db, notifier: notifier, now: time.Now}
}

// NewFirestore returns a Store backed by Cloud Firestore. Subscriptions use
// Firestore's own snapshot listeners.
func NewFirestore(client *firestore.Client) *Store {
	return &Store{fs: client, now: time.Now}
}

// SetClock overrides the timestamp source. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Collection is a typed view over one named collection.
type Collection[T any, P Record[T]] struct {
	name    string
	backend backend[T]
	now     func() time.Time
}

// Open returns the collection called name holding records of type T.
func Open[T any, P Record[T]](s *Store, name string) *Collection[T, P] {
	c := &Collection[T, P]{name: name, now: func() time.Time { return s.now() }}
	if s.fs != nil {
		c.backend = &firestoreBackend[T, P]{client: s.fs, name: name}
	} else {
		c.backend = &gormBackend[T]{db: s.db, name: name, notifier: s.notifier}
	}
	return c
}

func (c *Collection[T, P]) Name() string {
	return c.name
}

// Find runs a one-shot query.
func (c *Collection[T, P]) Find(ctx context.Context, q Query) ([]T, error) {
	recs, err := c.backend.find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.name, err)
	}
	return recs, nil
}

// Get point-reads one record. An absent record yields (nil, nil).
func (c *Collection[T, P]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, nil
	}
	rec, err := c.backend.get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	return rec, nil
}

// Create stores rec under a fresh id, stamps created_at and returns the id.
func (c *Collection[T, P]) Create(ctx context.Context, rec *T) (string, error) {
	return c.CreateWithID(ctx, uuid.NewString(), rec)
}

// CreateWithID stores rec under a caller-chosen id. Users are keyed by the
// identity uid this way.
func (c *Collection[T, P]) CreateWithID(ctx context.Context, id string, rec *T) (string, error) {
	doc := P(rec).Base()
	now := c.now().UTC()
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if err := c.backend.create(ctx, rec); err != nil {
		return "", &WriteError{Op: "create", Collection: c.name, ID: id, Err: err}
	}
	return id, nil
}

// Update merges fields into the record and stamps updated_at. Fields are
// not validated here; callers restrict what may be written.
func (c *Collection[T, P]) Update(ctx context.Context, id string, fields Fields) error {
	if id == "" {
		return &WriteError{Op: "update", Collection: c.name, Err: ErrNotFound}
	}
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updated_at"] = c.now().UTC()
	if err := c.backend.update(ctx, id, merged); err != nil {
		return &WriteError{Op: "update", Collection: c.name, ID: id, Err: err}
	}
	return nil
}

// Remove hard-deletes a record. Removing an absent record is not an error.
func (c *Collection[T, P]) Remove(ctx context.Context, id string) error {
	if err := c.backend.remove(ctx, id); err != nil {
		return &WriteError{Op: "delete", Collection: c.name, ID: id, Err: err}
	}
	return nil
}

// Subscription delivers complete result sets. C holds at most one pending
// snapshot; a newer snapshot replaces an unread one. C is closed after
// Cancel returns.
type Subscription[T any] struct {
	C      <-chan []T
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops the subscription and waits for its goroutine to exit. It is
// safe to call more than once.
func (s *Subscription[T]) Cancel() {
	s.cancel()
	<-s.done
}

// Subscribe delivers the current result of q immediately and again after
// every change. Read failures are logged and produce no delivery.
func (c *Collection[T, P]) Subscribe(ctx context.Context, q Query) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan []T, 1)
	sub := &Subscription[T]{C: out, cancel: cancel, done: make(chan struct{})}

	changes, stop := c.backend.watch(ctx, q)
	go func() {
		defer close(sub.done)
		defer close(out)
		defer stop()

		c.deliver(ctx, q, out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					log.Printf("store: listener on %s stopped; subscription is silent until cancelled", c.name)
					changes = nil
					continue
				}
				c.deliver(ctx, q, out)
			}
		}
	}()
	return sub
}

func (c *Collection[T, P]) deliver(ctx context.Context, q Query, out chan []T) {
	recs, err := c.backend.find(ctx, q)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("store: subscription on %s failed: %v", c.name, err)
		}
		return
	}
	if recs == nil {
		recs = []T{}
	}
	select {
	case out <- recs:
		return
	default:
	}
	// Drop the unread snapshot; it is superseded.
	select {
	case <-out:
	default:
	}
	out <- recs
}
