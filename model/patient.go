package model

import "strings"

// Patient
// @Description Patient record. doctor_id is the primary doctor hint; the
// @Description authoritative doctor linkage comes from appointments.
type Patient struct {
	Document
	FirstName  string `json:"first_name" gorm:"type:varchar(100)" firestore:"first_name" validate:"required" example:"Jane"`
	LastName   string `json:"last_name" gorm:"type:varchar(100);index" firestore:"last_name" validate:"required" example:"Doe"`
	Age        int    `json:"age" firestore:"age" validate:"gte=0,lte=150" example:"34"`
	Phone      string `json:"phone" gorm:"type:varchar(32)" firestore:"phone" validate:"required" example:"+62 812 0000 0000"`
	Email      string `json:"email" gorm:"type:varchar(191)" firestore:"email" validate:"omitempty,email" example:"jane@example.com"`
	Condition  string `json:"condition" gorm:"type:text" firestore:"condition" example:"Gingivitis"`
	DoctorID   string `json:"doctor_id" gorm:"type:varchar(64);index" firestore:"doctor_id" validate:"required" example:"doc-1"`
	DoctorName string `json:"doctor_name" gorm:"type:varchar(200)" firestore:"doctor_name" example:"Gregory House"`
}

func (Patient) TableName() string { return "patients" }

func (p Patient) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

func (p *Patient) Validate() error {
	return validateRecord("patient", p)
}
