// Package view holds the pure derived-view functions behind the
// dashboards: filters, sorts, aggregate counts and cross-entity joins.
package view

import (
	"slices"
	"sort"
)

// Predicate is one filter pass.
type Predicate[T any] func(T) bool

// Filter keeps the items that satisfy every predicate. Predicates are
// independent, so their order does not change the result.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if p != nil && !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred Predicate[T]) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// Pipeline holds the latest snapshot of one stream with the filters and
// sort a screen currently applies to it.
type Pipeline[T any] struct {
	all     []T
	filters map[string]Predicate[T]
	cmp     func(a, b T) int
}

func NewPipeline[T any]() *Pipeline[T] {
	return &Pipeline[T]{filters: map[string]Predicate[T]{}}
}

// Replace swaps in a new snapshot wholesale.
func (p *Pipeline[T]) Replace(snapshot []T) {
	p.all = slices.Clone(snapshot)
}

// SetFilter installs or replaces the named filter. A nil predicate removes
// it.
func (p *Pipeline[T]) SetFilter(name string, pred Predicate[T]) {
	if pred == nil {
		delete(p.filters, name)
		return
	}
	p.filters[name] = pred
}

// SortBy sets the comparator applied to Visible. nil keeps snapshot order.
func (p *Pipeline[T]) SortBy(cmp func(a, b T) int) {
	p.cmp = cmp
}

// All returns the unfiltered snapshot, for totals that must not follow
// the visible rows.
func (p *Pipeline[T]) All() []T {
	return slices.Clone(p.all)
}

// Visible returns the filtered and sorted rows.
func (p *Pipeline[T]) Visible() []T {
	names := make([]string, 0, len(p.filters))
	for n := range p.filters {
		names = append(names, n)
	}
	sort.Strings(names)
	preds := make([]Predicate[T], 0, len(names))
	for _, n := range names {
		preds = append(preds, p.filters[n])
	}

	out := Filter(p.all, preds...)
	if p.cmp != nil {
		slices.SortStableFunc(out, p.cmp)
	}
	return out
}
