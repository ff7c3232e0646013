package view

import (
	"cmp"
	"strings"

	"github.com/ariebrainware/dentara-clinic/model"
)

type TaskPredicate = Predicate[model.Task]

// TaskMatchText matches description, assignee and notes.
func TaskMatchText(q string) TaskPredicate {
	q = strings.ToLower(strings.TrimSpace(q))
	return func(t model.Task) bool {
		if q == "" {
			return true
		}
		return containsFold(t.Description, q) || containsFold(t.Assignee, q) || containsFold(t.Notes, q)
	}
}

func TaskStatusIs(status string) TaskPredicate {
	st, err := model.ParseTaskStatus(status)
	return func(t model.Task) bool {
		if status == "" || err != nil {
			return true
		}
		return t.Status.Canonical() == st
	}
}

func TaskPriorityIs(priority string) TaskPredicate {
	p, err := model.ParsePriority(priority)
	return func(t model.Task) bool {
		if priority == "" || err != nil {
			return true
		}
		return t.Priority.Canonical() == p
	}
}

var priorityRank = map[model.Priority]int{model.PriorityHigh: 0, model.PriorityMedium: 1, model.PriorityLow: 2}

// ByDueDate orders tasks by due date (missing last), then priority.
func ByDueDate(a, b model.Task) int {
	if c := compareMissingLast(a.DueDate, b.DueDate); c != 0 {
		return c
	}
	return cmp.Compare(priorityRank[a.Priority.Canonical()], priorityRank[b.Priority.Canonical()])
}
