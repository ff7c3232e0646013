package model

// Alert is a notification addressed to one doctor. Alerts are produced
// outside this service; doctors only read and acknowledge them.
type Alert struct {
	Document
	DoctorID     string   `json:"doctor_id" gorm:"type:varchar(64);index" firestore:"doctor_id" validate:"required"`
	PatientID    string   `json:"patient_id" gorm:"type:varchar(64)" firestore:"patient_id"`
	PatientName  string   `json:"patient_name" gorm:"type:varchar(200)" firestore:"patient_name"`
	Message      string   `json:"message" gorm:"type:text" firestore:"message" validate:"required"`
	Priority     Priority `json:"priority" gorm:"type:varchar(8)" firestore:"priority"`
	Acknowledged bool     `json:"acknowledged" gorm:"index" firestore:"acknowledged"`
}

func (Alert) TableName() string { return "alerts" }

func (a *Alert) Validate() error {
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	return validateRecord("alert", a)
}

func (a *Alert) Normalize() {
	a.Priority = a.Priority.Canonical()
}
