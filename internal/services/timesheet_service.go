package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
	"github.com/hrsuite/timetrack-api/pkg/logger"
)

// TimesheetService manages weekly timesheets and their daily logs. It holds
// the database handle directly because log upserts and batch saves must run
// inside a single transaction spanning several tables.
type TimesheetService struct {
	db       *gorm.DB
	repo     repository.TimesheetRepository
	logRepo  repository.DailyLogRepository
	empRepo  repository.EmployeeRepository
	auditSvc *AuditService
}

func NewTimesheetService(db *gorm.DB, repo repository.TimesheetRepository, logRepo repository.DailyLogRepository, empRepo repository.EmployeeRepository, auditSvc *AuditService) *TimesheetService {
	return &TimesheetService{
		db:       db,
		repo:     repo,
		logRepo:  logRepo,
		empRepo:  empRepo,
		auditSvc: auditSvc,
	}
}

// DailyLogInput captures one daily log entry. A nil ID means create; a set ID
// means update that log. TotalHours is never accepted from callers.
type DailyLogInput struct {
	ID           *uint   `json:"id"`
	TimesheetID  uint    `json:"timesheet_id" binding:"required"`
	ProjectID    *uint   `json:"project_id"`
	LogDate      string  `json:"log_date" binding:"required"`
	MorningIn    *string `json:"morning_in"`
	MorningOut   *string `json:"morning_out"`
	AfternoonIn  *string `json:"afternoon_in"`
	AfternoonOut *string `json:"afternoon_out"`
	Description  string  `json:"description"`
}

// GetOrCreateTimesheet returns the employee's timesheet for the given week,
// creating it if none exists yet. The call is idempotent: a second caller for
// the same (employee, week) gets the same row back. When two callers race on
// the insert, the unique index decides the winner and the loser re-fetches.
func (s *TimesheetService) GetOrCreateTimesheet(ctx context.Context, employeeID uint, weekStarting time.Time) (*models.Timesheet, error) {
	if _, err := s.empRepo.FindByID(ctx, employeeID); err != nil {
		return nil, translateNotFound(err, "employee")
	}

	weekStarting = truncateToDate(weekStarting)

	timesheet, err := s.repo.FindByEmployeeAndWeek(ctx, employeeID, weekStarting)
	if err == nil {
		return timesheet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	timesheet = &models.Timesheet{
		EmployeeID:   employeeID,
		WeekStarting: weekStarting,
		WeekEnding:   weekStarting.AddDate(0, 0, 6),
	}
	if err := s.repo.Create(ctx, timesheet); err != nil {
		if repository.IsDuplicateKeyError(err, "idx_timesheets_employee_week") {
			logger.Debug("lost timesheet insert race, re-fetching",
				"employee_id", employeeID, "week_starting", weekStarting.Format(models.DateLayout))
			existing, ferr := s.repo.FindByEmployeeAndWeek(ctx, employeeID, weekStarting)
			if ferr != nil {
				return nil, ferr
			}
			return existing, nil
		}
		return nil, err
	}
	return timesheet, nil
}

func (s *TimesheetService) FindByID(ctx context.Context, id uint) (*models.Timesheet, error) {
	timesheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "timesheet")
	}
	return timesheet, nil
}

func (s *TimesheetService) FindForEmployee(ctx context.Context, employeeID uint) ([]models.Timesheet, error) {
	if _, err := s.empRepo.FindByID(ctx, employeeID); err != nil {
		return nil, translateNotFound(err, "employee")
	}
	return s.repo.FindByEmployee(ctx, employeeID)
}

func (s *TimesheetService) FindForWeek(ctx context.Context, weekStarting time.Time) ([]models.Timesheet, error) {
	return s.repo.FindByWeek(ctx, truncateToDate(weekStarting))
}

// UpdateWeek moves the timesheet to a different week. WeekEnding always
// follows WeekStarting; a collision with the employee's existing timesheet
// for the target week is a conflict.
func (s *TimesheetService) UpdateWeek(ctx context.Context, id uint, weekStarting time.Time, actorID uint) (*models.Timesheet, error) {
	timesheet, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	weekStarting = truncateToDate(weekStarting)
	timesheet.WeekStarting = weekStarting
	timesheet.WeekEnding = weekStarting.AddDate(0, 0, 6)
	timesheet.DailyLogs = nil
	if err := s.repo.Update(ctx, timesheet); err != nil {
		if repository.IsDuplicateKeyError(err, "idx_timesheets_employee_week") {
			return nil, conflictErrorf("a timesheet for week %s already exists", weekStarting.Format(models.DateLayout))
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "UPDATE", "Timesheet", timesheet.ID,
		fmt.Sprintf("timesheet moved to week %s", weekStarting.Format(models.DateLayout)))
	return timesheet, nil
}

// Delete removes the timesheet, its daily logs, and their change histories.
func (s *TimesheetService) Delete(ctx context.Context, id uint, actorID uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "DELETE", "Timesheet", id,
		"timesheet deleted with its daily logs and change history")
	return nil
}

// UpsertDailyLog creates or updates a single daily log. Updates that change
// the description or project assignment append a DailyLogChange record in the
// same transaction as the log write.
func (s *TimesheetService) UpsertDailyLog(ctx context.Context, input *DailyLogInput) (*models.DailyLog, error) {
	var saved *models.DailyLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		log, err := s.upsertDailyLogTx(tx, input)
		if err != nil {
			return err
		}
		saved = log
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// BulkSave applies UpsertDailyLog to every entry inside one transaction. Any
// single failure rolls back the whole batch and surfaces that entry's error.
func (s *TimesheetService) BulkSave(ctx context.Context, inputs []DailyLogInput) ([]models.DailyLog, error) {
	if len(inputs) == 0 {
		return nil, validationErrorf("no log entries supplied")
	}

	saved := make([]models.DailyLog, 0, len(inputs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range inputs {
			log, err := s.upsertDailyLogTx(tx, &inputs[i])
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			saved = append(saved, *log)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// upsertDailyLogTx implements the upsert inside the caller's transaction:
// resolve the target log, validate references, parse the clock fields,
// recompute the total, record a change on observed diff, and save. Creating
// a log never produces a change record; only edits are audited. More than
// one log per (timesheet, date) is allowed.
func (s *TimesheetService) upsertDailyLogTx(tx *gorm.DB, input *DailyLogInput) (*models.DailyLog, error) {
	var log models.DailyLog
	isUpdate := input.ID != nil

	if isUpdate {
		if err := tx.First(&log, *input.ID).Error; err != nil {
			return nil, translateNotFound(err, "daily log")
		}
	}

	var timesheet models.Timesheet
	if err := tx.First(&timesheet, input.TimesheetID).Error; err != nil {
		return nil, translateNotFound(err, "timesheet")
	}

	if input.ProjectID != nil {
		var project models.Project
		if err := tx.First(&project, *input.ProjectID).Error; err != nil {
			return nil, translateNotFound(err, "project")
		}
	}

	logDate, err := time.Parse(models.DateLayout, input.LogDate)
	if err != nil {
		return nil, validationErrorf("invalid date %q. Use YYYY-MM-DD", input.LogDate)
	}

	total, err := ComputeDuration(input.MorningIn, input.MorningOut, input.AfternoonIn, input.AfternoonOut)
	if err != nil {
		return nil, err
	}

	if isUpdate {
		descriptionChanged := log.Description != input.Description
		projectChanged := !sameProjectRef(log.ProjectID, input.ProjectID)
		if descriptionChanged || projectChanged {
			change := &models.DailyLogChange{
				DailyLogID:     log.ID,
				ProjectID:      input.ProjectID,
				ChangedAt:      time.Now().UTC(),
				NewDescription: input.Description,
			}
			if err := tx.Create(change).Error; err != nil {
				return nil, err
			}
		}
	}

	log.TimesheetID = input.TimesheetID
	log.ProjectID = input.ProjectID
	log.LogDate = logDate
	log.DayOfWeek = logDate.Weekday().String()
	log.MorningIn = input.MorningIn
	log.MorningOut = input.MorningOut
	log.AfternoonIn = input.AfternoonIn
	log.AfternoonOut = input.AfternoonOut
	log.TotalHours = FormatDuration(total)
	log.Description = input.Description

	if err := tx.Save(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteDailyLog removes the log together with its change history.
func (s *TimesheetService) DeleteDailyLog(ctx context.Context, id uint, actorID uint) error {
	if _, err := s.logRepo.FindByID(ctx, id); err != nil {
		return translateNotFound(err, "daily log")
	}
	if err := s.logRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "DELETE", "DailyLog", id,
		"daily log deleted with its change history")
	return nil
}

func (s *TimesheetService) FindDailyLog(ctx context.Context, id uint) (*models.DailyLog, error) {
	log, err := s.logRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "daily log")
	}
	return log, nil
}

// sameProjectRef compares two optional project references by value
func sameProjectRef(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// truncateToDate drops the time-of-day portion, keeping a bare UTC date
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
