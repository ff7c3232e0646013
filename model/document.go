package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Document holds the fields every stored record carries. The ID is assigned
// by the store (or by the identity provider for users), never by callers.
type Document struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36" firestore:"-"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// Base exposes the embedded document so generic store code can stamp ids and
// timestamps on any record type.
func (d *Document) Base() *Document {
	return d
}

// ValidationError reports the fields of a record that failed validation.
type ValidationError struct {
	Entity string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: missing or malformed %s", e.Entity, strings.Join(e.Fields, ", "))
}

// ErrInvalidValue is returned when an enumerated value cannot be parsed.
var ErrInvalidValue = errors.New("invalid value")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateRecord runs struct tag validation and converts the result into a
// ValidationError naming the offending json fields.
func validateRecord(entity string, rec interface{}) error {
	err := getValidator().Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Entity: entity, Fields: fields}
}

// canonicalKey folds case and separators so that "Checked-In", "checked in"
// and "checked_in" compare equal.
func canonicalKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
