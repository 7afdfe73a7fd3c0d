package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

// openTestDB creates an isolated in-memory database per test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Department{}, &models.Designation{}, &models.Employee{},
		&models.Project{}, &models.Timesheet{}, &models.DailyLog{},
		&models.DailyLogChange{}, &models.ProjectApproval{}, &models.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedTimesheet creates an employee, a project, and an open timesheet.
func seedTimesheet(t *testing.T, db *gorm.DB) (*models.Timesheet, *models.Project) {
	t.Helper()
	employee := &models.Employee{Name: "Dana", Email: "dana@acme.test", Status: models.StatusActive}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	project := &models.Project{Name: "Apollo", GUID: "test-guid-apollo"}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	timesheet := &models.Timesheet{
		EmployeeID:   employee.ID,
		WeekStarting: monday(),
		WeekEnding:   monday().AddDate(0, 0, 6),
	}
	if err := db.Create(timesheet).Error; err != nil {
		t.Fatalf("seed timesheet: %v", err)
	}
	return timesheet, project
}

func newDBTimesheetService(db *gorm.DB) *TimesheetService {
	return NewTimesheetService(db,
		repository.NewTimesheetRepository(db),
		repository.NewDailyLogRepository(db),
		repository.NewEmployeeRepository(db),
		nil)
}

func changeCount(t *testing.T, db *gorm.DB, logID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.DailyLogChange{}).Where("daily_log_id = ?", logID).Count(&count).Error; err != nil {
		t.Fatalf("count changes: %v", err)
	}
	return count
}

func TestUpsertDailyLog_CreateWritesNoChangeRecord(t *testing.T) {
	db := openTestDB(t)
	timesheet, _ := seedTimesheet(t, db)
	service := newDBTimesheetService(db)

	log, err := service.UpsertDailyLog(context.Background(), &DailyLogInput{
		TimesheetID: timesheet.ID,
		LogDate:     "2026-03-02",
		MorningIn:   strPtr("09:00"),
		MorningOut:  strPtr("12:00"),
		Description: "initial entry",
	})
	assert.NoError(t, err)
	assert.Equal(t, "3:00", log.TotalHours)
	assert.Equal(t, "Monday", log.DayOfWeek)
	assert.Zero(t, changeCount(t, db, log.ID))
}

func TestUpsertDailyLog_EditAppendsExactlyOneChange(t *testing.T) {
	db := openTestDB(t)
	timesheet, _ := seedTimesheet(t, db)
	service := newDBTimesheetService(db)

	log, err := service.UpsertDailyLog(context.Background(), &DailyLogInput{
		TimesheetID: timesheet.ID,
		LogDate:     "2026-03-02",
		Description: "A",
	})
	assert.NoError(t, err)

	// A -> B records the edit.
	updated, err := service.UpsertDailyLog(context.Background(), &DailyLogInput{
		ID:          &log.ID,
		TimesheetID: timesheet.ID,
		LogDate:     "2026-03-02",
		Description: "B",
	})
	assert.NoError(t, err)
	assert.Equal(t, "B", updated.Description)
	assert.EqualValues(t, 1, changeCount(t, db, log.ID))

	var change models.DailyLogChange
	assert.NoError(t, db.Where("daily_log_id = ?", log.ID).First(&change).Error)
	assert.Equal(t, "B", change.NewDescription)

	// B -> B is not an edit; no second record.
	_, err = service.UpsertDailyLog(context.Background(), &DailyLogInput{
		ID:          &log.ID,
		TimesheetID: timesheet.ID,
		LogDate:     "2026-03-02",
		Description: "B",
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, changeCount(t, db, log.ID))
}

func TestUpsertDailyLog_ProjectReassignmentRecordsChange(t *testing.T) {
	db := openTestDB(t)
	timesheet, project := seedTimesheet(t, db)
	service := newDBTimesheetService(db)

	log, err := service.UpsertDailyLog(context.Background(), &DailyLogInput{
		TimesheetID: timesheet.ID,
		LogDate:     "2026-03-03",
		Description: "same text",
	})
	assert.NoError(t, err)

	// Same description, different project: still an edit.
	_, err = service.UpsertDailyLog(context.Background(), &DailyLogInput{
		ID:          &log.ID,
		TimesheetID: timesheet.ID,
		ProjectID:   &project.ID,
		LogDate:     "2026-03-03",
		Description: "same text",
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, changeCount(t, db, log.ID))
}

func TestUpsertDailyLog_TotalHoursNeverCallerSettable(t *testing.T) {
	db := openTestDB(t)
	timesheet, _ := seedTimesheet(t, db)
	service := newDBTimesheetService(db)

	log, err := service.UpsertDailyLog(context.Background(), &DailyLogInput{
		TimesheetID:  timesheet.ID,
		LogDate:      "2026-03-04",
		MorningIn:    strPtr("08:30"),
		MorningOut:   strPtr("12:00"),
		AfternoonIn:  strPtr("13:00"),
		AfternoonOut: strPtr("17:00"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "7:30", log.TotalHours)

	// Dropping the afternoon pair recomputes the total from scratch.
	updated, err := service.UpsertDailyLog(context.Background(), &DailyLogInput{
		ID:          &log.ID,
		TimesheetID: timesheet.ID,
		LogDate:     "2026-03-04",
		MorningIn:   strPtr("08:30"),
		MorningOut:  strPtr("12:00"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "3:30", updated.TotalHours)
}

func TestBulkSave_OneBadEntryCommitsNothing(t *testing.T) {
	db := openTestDB(t)
	timesheet, _ := seedTimesheet(t, db)
	service := newDBTimesheetService(db)

	inputs := []DailyLogInput{
		{TimesheetID: timesheet.ID, LogDate: "2026-03-02", Description: "mon"},
		{TimesheetID: timesheet.ID, LogDate: "2026-03-03", Description: "tue"},
		{TimesheetID: timesheet.ID, LogDate: "2026-03-04", Description: "wed"},
		{TimesheetID: timesheet.ID, ProjectID: uintPtr(999), LogDate: "2026-03-05", Description: "thu"},
	}

	_, err := service.BulkSave(context.Background(), inputs)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "entry 3")
	assert.Contains(t, err.Error(), "project")

	var logs int64
	assert.NoError(t, db.Model(&models.DailyLog{}).Count(&logs).Error)
	assert.Zero(t, logs)
}

func TestBulkSave_AllValidCommitsAll(t *testing.T) {
	db := openTestDB(t)
	timesheet, project := seedTimesheet(t, db)
	service := newDBTimesheetService(db)

	inputs := []DailyLogInput{
		{TimesheetID: timesheet.ID, LogDate: "2026-03-02", MorningIn: strPtr("09:00"), MorningOut: strPtr("12:00"), Description: "mon"},
		{TimesheetID: timesheet.ID, ProjectID: &project.ID, LogDate: "2026-03-03", Description: "tue"},
	}

	saved, err := service.BulkSave(context.Background(), inputs)
	assert.NoError(t, err)
	assert.Len(t, saved, 2)

	var logs int64
	assert.NoError(t, db.Model(&models.DailyLog{}).Count(&logs).Error)
	assert.EqualValues(t, 2, logs)
	assert.Zero(t, changeCount(t, db, saved[0].ID))
	assert.Zero(t, changeCount(t, db, saved[1].ID))
}
