// Package store is the document store used by every entity access function.
// A Collection is a typed view over one named collection, backed either by a
// SQL database through gorm or by Cloud Firestore.
package store

import (
	"errors"
	"fmt"
)

// Op is a query predicate operator.
type Op string

const (
	OpEq Op = "=="
	OpIn Op = "in"
)

// Filter is one predicate on a field.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Query is a conjunction of filters with an optional single ascending (or
// descending) order. The zero Query selects the whole collection.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
}

// Where returns a Query with one equality predicate.
func Where(field string, value interface{}) Query {
	return Query{}.Where(field, value)
}

// Where adds an equality predicate.
func (q Query) Where(field string, value interface{}) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Op: OpEq, Value: value})
	return q
}

// WhereIn adds a membership predicate.
func (q Query) WhereIn(field string, values ...interface{}) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Op: OpIn, Value: values})
	return q
}

// Order sorts the result ascending by field.
func (q Query) Order(field string) Query {
	q.OrderBy = field
	q.Desc = false
	return q
}

// OrderDesc sorts the result descending by field.
func (q Query) OrderDesc(field string) Query {
	q.OrderBy = field
	q.Desc = true
	return q
}

// Fields is a partial record for Update, keyed by stored field name.
type Fields map[string]interface{}

// ErrNotFound is returned by writes addressed to an absent record.
var ErrNotFound = errors.New("record not found")

// WriteError is returned when the store rejects a create, update or delete.
type WriteError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *WriteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
