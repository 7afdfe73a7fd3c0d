package repository

import (
	"context"
	"time"

	"github.com/hrsuite/timetrack-api/internal/models"
	"gorm.io/gorm"
)

// TimesheetRepository defines the interface for timesheet data access
type TimesheetRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Timesheet, error)
	FindByEmployeeAndWeek(ctx context.Context, employeeID uint, weekStarting time.Time) (*models.Timesheet, error)
	FindByEmployee(ctx context.Context, employeeID uint) ([]models.Timesheet, error)
	FindByWeek(ctx context.Context, weekStarting time.Time) ([]models.Timesheet, error)
	Create(ctx context.Context, timesheet *models.Timesheet) error
	Update(ctx context.Context, timesheet *models.Timesheet) error
	Delete(ctx context.Context, id uint) error
}

type timesheetRepository struct {
	db *gorm.DB
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *gorm.DB) TimesheetRepository {
	return &timesheetRepository{db: db}
}

func (r *timesheetRepository) FindByID(ctx context.Context, id uint) (*models.Timesheet, error) {
	var timesheet models.Timesheet
	err := r.db.WithContext(ctx).
		Preload("DailyLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("daily_logs.log_date ASC, daily_logs.id ASC")
		}).
		First(&timesheet, id).Error
	if err != nil {
		return nil, err
	}
	return &timesheet, nil
}

func (r *timesheetRepository) FindByEmployeeAndWeek(ctx context.Context, employeeID uint, weekStarting time.Time) (*models.Timesheet, error) {
	var timesheet models.Timesheet
	err := r.db.WithContext(ctx).
		Preload("DailyLogs").
		Where("employee_id = ? AND week_starting = ?", employeeID, weekStarting).
		First(&timesheet).Error
	if err != nil {
		return nil, err
	}
	return &timesheet, nil
}

func (r *timesheetRepository) FindByEmployee(ctx context.Context, employeeID uint) ([]models.Timesheet, error) {
	var timesheets []models.Timesheet
	err := r.db.WithContext(ctx).
		Preload("DailyLogs").
		Where("employee_id = ?", employeeID).
		Order("week_starting DESC").
		Find(&timesheets).Error
	return timesheets, err
}

func (r *timesheetRepository) FindByWeek(ctx context.Context, weekStarting time.Time) ([]models.Timesheet, error) {
	var timesheets []models.Timesheet
	err := r.db.WithContext(ctx).
		Preload("DailyLogs").
		Where("week_starting = ?", weekStarting).
		Order("employee_id ASC").
		Find(&timesheets).Error
	return timesheets, err
}

func (r *timesheetRepository) Create(ctx context.Context, timesheet *models.Timesheet) error {
	return r.db.WithContext(ctx).Create(timesheet).Error
}

func (r *timesheetRepository) Update(ctx context.Context, timesheet *models.Timesheet) error {
	return r.db.WithContext(ctx).Save(timesheet).Error
}

// Delete removes the timesheet along with every daily log on it and each
// log's change history and approvals.
func (r *timesheetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLogsForTimesheets(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&models.Timesheet{}, id).Error
	})
}

// deleteLogsForTimesheets removes the daily logs of the given timesheets
// together with their change records and any approvals filed against those
// records. Runs inside the caller's transaction.
func deleteLogsForTimesheets(tx *gorm.DB, timesheetIDs []uint) error {
	var logIDs []uint
	if err := tx.Model(&models.DailyLog{}).
		Where("timesheet_id IN ?", timesheetIDs).
		Pluck("id", &logIDs).Error; err != nil {
		return err
	}
	if len(logIDs) == 0 {
		return nil
	}
	if err := deleteChangesForLogs(tx, logIDs); err != nil {
		return err
	}
	return tx.Delete(&models.DailyLog{}, logIDs).Error
}

// deleteChangesForLogs removes change records and their approvals for the
// given daily logs. Runs inside the caller's transaction.
func deleteChangesForLogs(tx *gorm.DB, logIDs []uint) error {
	var changeIDs []uint
	if err := tx.Model(&models.DailyLogChange{}).
		Where("daily_log_id IN ?", logIDs).
		Pluck("id", &changeIDs).Error; err != nil {
		return err
	}
	if len(changeIDs) > 0 {
		if err := tx.Where("daily_log_change_id IN ?", changeIDs).
			Delete(&models.ProjectApproval{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.DailyLogChange{}, changeIDs).Error; err != nil {
			return err
		}
	}
	return nil
}

// DailyLogRepository defines the interface for daily log data access
type DailyLogRepository interface {
	FindByID(ctx context.Context, id uint) (*models.DailyLog, error)
	FindByTimesheet(ctx context.Context, timesheetID uint) ([]models.DailyLog, error)
	Create(ctx context.Context, log *models.DailyLog) error
	Update(ctx context.Context, log *models.DailyLog) error
	Delete(ctx context.Context, id uint) error
}

type dailyLogRepository struct {
	db *gorm.DB
}

// NewDailyLogRepository creates a new daily log repository
func NewDailyLogRepository(db *gorm.DB) DailyLogRepository {
	return &dailyLogRepository{db: db}
}

func (r *dailyLogRepository) FindByID(ctx context.Context, id uint) (*models.DailyLog, error) {
	var log models.DailyLog
	err := r.db.WithContext(ctx).First(&log, id).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *dailyLogRepository) FindByTimesheet(ctx context.Context, timesheetID uint) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := r.db.WithContext(ctx).
		Where("timesheet_id = ?", timesheetID).
		Order("log_date ASC, id ASC").
		Find(&logs).Error
	return logs, err
}

func (r *dailyLogRepository) Create(ctx context.Context, log *models.DailyLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *dailyLogRepository) Update(ctx context.Context, log *models.DailyLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// Delete removes the log and its change history and approvals.
func (r *dailyLogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChangesForLogs(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&models.DailyLog{}, id).Error
	})
}
