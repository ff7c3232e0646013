package model

import "strings"

// User is the clinic profile of an identity. The ID equals the identity uid.
type User struct {
	Document
	Role      Role   `json:"role" gorm:"type:varchar(16);index;not null" firestore:"role" validate:"required,oneof=staff doctor manager"`
	FirstName string `json:"first_name" gorm:"type:varchar(100)" firestore:"first_name"`
	LastName  string `json:"last_name" gorm:"type:varchar(100)" firestore:"last_name"`
	Email     string `json:"email" gorm:"type:varchar(191);index" firestore:"email" validate:"required,email"`
	Phone     string `json:"phone" gorm:"type:varchar(32)" firestore:"phone"`
}

func (User) TableName() string { return "users" }

// FullName joins first and last name, skipping whichever is empty.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// DisplayName is the name shown on doctor-facing screens.
func (u User) DisplayName() string {
	name := u.FullName()
	if name == "" {
		return ""
	}
	if u.Role == RoleDoctor {
		return "Dr. " + name
	}
	return name
}

func (u *User) Validate() error {
	return validateRecord("user", u)
}

// ProfileUpdate carries the fields a user may change after signup.
type ProfileUpdate struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}
