// Package dashboard runs the live screens. A screen owns its
// subscriptions, joins their snapshots and emits a Frame after every
// delivery.
package dashboard

import (
	"context"

	"github.com/ariebrainware/dentara-clinic/store"
)

// Frame is one rendering of a screen. Data is nil until Ready, which turns
// true once every source of the screen has delivered a snapshot.
type Frame struct {
	Screen string      `json:"screen"`
	Ready  bool        `json:"ready"`
	Data   interface{} `json:"data,omitempty"`
}

type update struct {
	source int
	apply  func()
}

// board serializes snapshot deliveries from several subscriptions onto one
// goroutine, so screen state needs no locking.
type board struct {
	name    string
	updates chan update
	sources int
	cancels []func()
	render  func() interface{}
}

func newBoard(name string) *board {
	return &board{name: name, updates: make(chan update)}
}

// attach feeds sub into b. apply runs on the board goroutine.
func attach[T any](ctx context.Context, b *board, sub *store.Subscription[T], apply func([]T)) {
	idx := b.sources
	b.sources++
	b.cancels = append(b.cancels, sub.Cancel)
	go func() {
		for snap := range sub.C {
			select {
			case b.updates <- update{source: idx, apply: func() { apply(snap) }}:
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (b *board) close() {
	for _, cancel := range b.cancels {
		cancel()
	}
}

func (b *board) run(ctx context.Context, emit func(Frame) error) error {
	defer b.close()
	seen := make(map[int]bool, b.sources)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u := <-b.updates:
			u.apply()
			seen[u.source] = true
			f := Frame{Screen: b.name, Ready: len(seen) == b.sources}
			if f.Ready {
				f.Data = b.render()
			}
			if err := emit(f); err != nil {
				return err
			}
		}
	}
}
