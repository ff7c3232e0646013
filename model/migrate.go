package model

import "gorm.io/gorm"

// Tables lists every gorm-managed table: the clinic collections, the
// identity tables and the security log.
func Tables() []interface{} {
	return []interface{}{
		&User{},
		&Patient{},
		&Appointment{},
		&Task{},
		&Alert{},
		&Treatment{},
		&Credential{},
		&Session{},
		&SecurityLog{},
	}
}

// AutoMigrate creates or updates every table in Tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Tables()...)
}
