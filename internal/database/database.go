package database

import (
	"fmt"

	"github.com/clinova/odonto-api/pkg/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every clinic model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Dentist{},
		&models.Patient{},
		&models.Appointment{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
