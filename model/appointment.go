package model

// Appointment
// @Description A scheduled visit. patient_name and doctor_name are snapshots
// @Description taken at write time and are not kept in sync automatically.
type Appointment struct {
	Document
	PatientID    string            `json:"patient_id" gorm:"type:varchar(64);index" firestore:"patient_id" validate:"required_without=PatientName" example:"0b6f..."`
	PatientName  string            `json:"patient_name" gorm:"type:varchar(200)" firestore:"patient_name" validate:"required_without=PatientID" example:"Jane Doe"`
	DoctorID     string            `json:"doctor_id" gorm:"type:varchar(64);index" firestore:"doctor_id" validate:"required" example:"doc-1"`
	DoctorName   string            `json:"doctor_name" gorm:"type:varchar(200)" firestore:"doctor_name" example:"Gregory House"`
	Date         string            `json:"date" gorm:"type:varchar(10);index" firestore:"date" validate:"required,datetime=2006-01-02" example:"2025-01-15"`
	Time         string            `json:"time" gorm:"type:varchar(5)" firestore:"time" validate:"required,datetime=15:04" example:"09:30"`
	Reason       string            `json:"reason" gorm:"type:text" firestore:"reason" example:"Check-up"`
	Room         string            `json:"room" gorm:"type:varchar(32)" firestore:"room" example:"2"`
	Status       AppointmentStatus `json:"status" gorm:"type:varchar(16);index" firestore:"status" example:"Pending"`
	ActionStatus ActionStatus      `json:"action_status" gorm:"type:varchar(16)" firestore:"action_status" example:""`
	Notes        string            `json:"notes" gorm:"type:text" firestore:"notes"`
}

func (Appointment) TableName() string { return "appointments" }

// Validate checks the record a staff member or doctor is about to create.
// An empty status is filled with def before the check.
func (a *Appointment) Validate(def AppointmentStatus) error {
	if a.Status == "" {
		a.Status = def
	}
	if err := validateRecord("appointment", a); err != nil {
		return err
	}
	st, err := ParseAppointmentStatus(string(a.Status))
	if err != nil {
		return &ValidationError{Entity: "appointment", Fields: []string{"status"}}
	}
	a.Status = st
	return nil
}

// Normalize rewrites status values to their canonical spelling.
func (a *Appointment) Normalize() {
	a.Status = a.Status.Canonical()
	a.ActionStatus = a.ActionStatus.Canonical()
}
