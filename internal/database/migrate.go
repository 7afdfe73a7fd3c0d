package database

import (
	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/pkg/logger"
)

// Migrate runs GORM auto-migrations for every model. Order matters: parents
// before the rows that reference them.
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Department{},
		&models.Designation{},
		&models.Employee{},
		&models.Project{},
		&models.ProjectTeam{},
		&models.Timesheet{},
		&models.DailyLog{},
		&models.DailyLogChange{},
		&models.ProjectApproval{},
		&models.Notification{},
		&models.AuditLog{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database migrations completed")
	return nil
}
