package model

import (
	"database/sql/driver"
	"fmt"
)

// AppointmentStatus is the single canonical lifecycle status of an appointment.
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "Pending"
	StatusConfirmed  AppointmentStatus = "Confirmed"
	StatusInProgress AppointmentStatus = "In Progress"
	StatusCompleted  AppointmentStatus = "Completed"
	StatusCancelled  AppointmentStatus = "Cancelled"
	StatusNoShow     AppointmentStatus = "No-Show"
)

// AppointmentStatuses lists the canonical statuses in lifecycle order.
var AppointmentStatuses = []AppointmentStatus{
	StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow,
}

var statusAliases = map[string]AppointmentStatus{
	"pending":    StatusPending,
	"confirmed":  StatusConfirmed,
	"inprogress": StatusInProgress,
	"checkedin":  StatusInProgress,
	"checkin":    StatusInProgress,
	"completed":  StatusCompleted,
	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
	"noshow":     StatusNoShow,
}

// ParseAppointmentStatus maps any known spelling of a status onto its
// canonical value. Matching ignores case, spaces, hyphens and underscores.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	if st, ok := statusAliases[canonicalKey(s)]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: appointment status %q", ErrInvalidValue, s)
}

// Valid reports whether s is already in canonical form.
func (s AppointmentStatus) Valid() bool {
	for _, st := range AppointmentStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Canonical returns the canonical spelling of s. Unknown values are
// returned unchanged.
func (s AppointmentStatus) Canonical() AppointmentStatus {
	if st, err := ParseAppointmentStatus(string(s)); err == nil {
		return st
	}
	return s
}

// storedSpellings are spellings found in records written by older clients.
// Equality and "in" queries must list them to match such rows.
var storedSpellings = map[AppointmentStatus][]string{
	StatusInProgress: {"Checked-In", "Checked-in", "checked-in", "Checked In", "In-Progress", "in progress"},
	StatusCancelled:  {"Canceled", "cancelled", "canceled"},
	StatusNoShow:     {"No Show", "no-show", "NoShow", "noshow"},
	StatusPending:    {"pending"},
	StatusConfirmed:  {"confirmed"},
	StatusCompleted:  {"completed"},
}

// StatusSpellings returns the canonical value of each status followed by
// the legacy spellings a stored record may carry.
func StatusSpellings(statuses ...AppointmentStatus) []string {
	var out []string
	for _, st := range statuses {
		out = append(out, string(st))
		out = append(out, storedSpellings[st]...)
	}
	return out
}

func (s *AppointmentStatus) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	*s = AppointmentStatus(raw).Canonical()
	return nil
}

func (s AppointmentStatus) Value() (driver.Value, error) {
	return string(s.Canonical()), nil
}

func (s *AppointmentStatus) UnmarshalText(text []byte) error {
	st, err := ParseAppointmentStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ActionStatus is the follow-up marker on a no-show appointment. It is
// independent of the primary status.
type ActionStatus string

const (
	ActionNone      ActionStatus = ""
	ActionRebooked  ActionStatus = "Rebooked"
	ActionEscalated ActionStatus = "Escalated"
)

// ParseActionStatus accepts an empty string (no action) or a known action.
func ParseActionStatus(s string) (ActionStatus, error) {
	switch canonicalKey(s) {
	case "":
		return ActionNone, nil
	case "rebooked":
		return ActionRebooked, nil
	case "escalated", "unreachable":
		return ActionEscalated, nil
	}
	return "", fmt.Errorf("%w: action status %q", ErrInvalidValue, s)
}

func (a ActionStatus) Canonical() ActionStatus {
	if st, err := ParseActionStatus(string(a)); err == nil {
		return st
	}
	return a
}

func (a *ActionStatus) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	*a = ActionStatus(raw).Canonical()
	return nil
}

func (a ActionStatus) Value() (driver.Value, error) {
	return string(a.Canonical()), nil
}

func (a *ActionStatus) UnmarshalText(text []byte) error {
	st, err := ParseActionStatus(string(text))
	if err != nil {
		return err
	}
	*a = st
	return nil
}

// TaskStatus is the two-state status of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskCompleted TaskStatus = "Completed"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch canonicalKey(s) {
	case "pending":
		return TaskPending, nil
	case "completed", "done":
		return TaskCompleted, nil
	}
	return "", fmt.Errorf("%w: task status %q", ErrInvalidValue, s)
}

func (s TaskStatus) Canonical() TaskStatus {
	if st, err := ParseTaskStatus(string(s)); err == nil {
		return st
	}
	return s
}

func (s *TaskStatus) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	*s = TaskStatus(raw).Canonical()
	return nil
}

func (s TaskStatus) Value() (driver.Value, error) {
	return string(s.Canonical()), nil
}

func (s *TaskStatus) UnmarshalText(text []byte) error {
	st, err := ParseTaskStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Toggled flips between Pending and Completed.
func (s TaskStatus) Toggled() TaskStatus {
	if s == TaskCompleted {
		return TaskPending
	}
	return TaskCompleted
}

// Priority is used by tasks and alerts.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority defaults an empty value to Medium.
func ParsePriority(s string) (Priority, error) {
	switch canonicalKey(s) {
	case "":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("%w: priority %q", ErrInvalidValue, s)
}

// Canonical maps an empty priority to Medium, like ParsePriority.
func (p Priority) Canonical() Priority {
	if pr, err := ParsePriority(string(p)); err == nil {
		return pr
	}
	return p
}

func (p *Priority) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	*p = Priority(raw).Canonical()
	return nil
}

func (p Priority) Value() (driver.Value, error) {
	return string(p.Canonical()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	pr, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = pr
	return nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("%w: cannot scan %T as text", ErrInvalidValue, src)
}
