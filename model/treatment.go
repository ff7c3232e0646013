package model

// ClinicalNote is the treatment discriminator marking a free-text note.
const ClinicalNote = "Clinical Note"

// Treatment represents a treatment performed on a patient. Clinical notes
// are stored as treatments whose Treatment field equals ClinicalNote.
// @Description Treatment or clinical note
type Treatment struct {
	Document
	PatientID   string `json:"patient_id" gorm:"type:varchar(64);index" firestore:"patient_id" validate:"required" example:"0b6f..."`
	PatientName string `json:"patient_name" gorm:"type:varchar(200)" firestore:"patient_name" example:"Jane Doe"`
	Doctor      string `json:"doctor" gorm:"type:varchar(200)" firestore:"doctor" example:"Dr. Gregory House"`
	Date        string `json:"date" gorm:"type:varchar(10);index" firestore:"date" validate:"required,datetime=2006-01-02" example:"2025-01-15"`
	Treatment   string `json:"treatment" gorm:"type:varchar(200)" firestore:"treatment" validate:"required" example:"Scaling"`
	Notes       string `json:"notes" gorm:"type:text" firestore:"notes" example:"No complications"`
	Status      string `json:"status" gorm:"type:varchar(32)" firestore:"status" example:"Completed"`
}

func (Treatment) TableName() string { return "treatments" }

func (t Treatment) IsClinicalNote() bool {
	return t.Treatment == ClinicalNote
}

func (t *Treatment) Validate() error {
	return validateRecord("treatment", t)
}
