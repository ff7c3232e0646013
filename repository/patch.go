package repository

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/store"
	"github.com/ariebrainware/dentara-clinic/util"
)

// Patch is a partial update as decoded from a JSON body.
type Patch map[string]interface{}

type fieldKind int

const (
	textField fieldKind = iota
	nameField
	intField
	boolField
	dateField
	timeField
	apptStatusField
	actionStatusField
	taskStatusField
	priorityField
)

// convert checks one patch value against its kind and returns the value
// to store.
func (k fieldKind) convert(v interface{}) (interface{}, bool) {
	switch k {
	case intField:
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			if n != math.Trunc(n) {
				return nil, false
			}
			return int(n), true
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(n))
			return i, err == nil
		}
		return nil, false
	case boolField:
		b, ok := v.(bool)
		return b, ok
	}

	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	switch k {
	case nameField:
		return util.NormalizeName(s), true
	case dateField:
		if s == "" {
			return s, true
		}
		_, err := time.Parse(DateLayout, s)
		return s, err == nil
	case timeField:
		if s == "" {
			return s, true
		}
		_, err := time.Parse(TimeLayout, s)
		return s, err == nil
	case apptStatusField:
		st, err := model.ParseAppointmentStatus(s)
		return st, err == nil
	case actionStatusField:
		st, err := model.ParseActionStatus(s)
		return st, err == nil
	case taskStatusField:
		st, err := model.ParseTaskStatus(s)
		return st, err == nil
	case priorityField:
		p, err := model.ParsePriority(s)
		return p, err == nil
	}
	return s, true
}

// fieldsFrom keeps the writable fields of patch, converting each value. Any
// unknown field or malformed value fails the whole patch.
func fieldsFrom(entity string, allowed map[string]fieldKind, patch Patch) (store.Fields, error) {
	fields := make(store.Fields, len(patch))
	var bad []string
	for name, raw := range patch {
		kind, ok := allowed[name]
		if !ok {
			bad = append(bad, name)
			continue
		}
		v, ok := kind.convert(raw)
		if !ok {
			bad = append(bad, name)
			continue
		}
		fields[name] = v
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, &model.ValidationError{Entity: entity, Fields: bad}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty %s update", model.ErrInvalidValue, entity)
	}
	return fields, nil
}

var appointmentFields = map[string]fieldKind{
	"patient_id":    textField,
	"patient_name":  nameField,
	"doctor_id":     textField,
	"doctor_name":   nameField,
	"date":          dateField,
	"time":          timeField,
	"reason":        textField,
	"room":          textField,
	"status":        apptStatusField,
	"action_status": actionStatusField,
	"notes":         textField,
}

var patientFields = map[string]fieldKind{
	"first_name":  nameField,
	"last_name":   nameField,
	"age":         intField,
	"phone":       textField,
	"email":       textField,
	"condition":   textField,
	"doctor_id":   textField,
	"doctor_name": nameField,
}

var taskFields = map[string]fieldKind{
	"description": textField,
	"assignee":    textField,
	"priority":    priorityField,
	"due_date":    dateField,
	"notes":       textField,
	"status":      taskStatusField,
}
