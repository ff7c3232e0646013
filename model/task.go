package model

// Task is a staff to-do item.
type Task struct {
	Document
	Description string     `json:"description" gorm:"type:text" firestore:"description" validate:"required" example:"Call lab about crown"`
	Assignee    string     `json:"assignee" gorm:"type:varchar(200)" firestore:"assignee" example:"Front desk"`
	Priority    Priority   `json:"priority" gorm:"type:varchar(8)" firestore:"priority" example:"Medium"`
	DueDate     string     `json:"due_date" gorm:"type:varchar(10)" firestore:"due_date" validate:"omitempty,datetime=2006-01-02" example:"2025-01-20"`
	Notes       string     `json:"notes" gorm:"type:text" firestore:"notes"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(16);index" firestore:"status" example:"Pending"`
}

func (Task) TableName() string { return "tasks" }

// Validate fills the creation defaults (Medium priority, Pending status)
// and checks the result.
func (t *Task) Validate() error {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.Status = TaskPending
	return validateRecord("task", t)
}

func (t *Task) Normalize() {
	t.Status = t.Status.Canonical()
	t.Priority = t.Priority.Canonical()
}
