package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

// Mock TimesheetRepository
type mockTimesheetRepo struct {
	repository.TimesheetRepository
	mockFindByEmployeeAndWeek func(ctx context.Context, employeeID uint, weekStarting time.Time) (*models.Timesheet, error)
	mockCreate                func(ctx context.Context, timesheet *models.Timesheet) error
}

func (m *mockTimesheetRepo) FindByEmployeeAndWeek(ctx context.Context, employeeID uint, weekStarting time.Time) (*models.Timesheet, error) {
	return m.mockFindByEmployeeAndWeek(ctx, employeeID, weekStarting)
}

func (m *mockTimesheetRepo) Create(ctx context.Context, timesheet *models.Timesheet) error {
	return m.mockCreate(ctx, timesheet)
}

func monday() time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func TestGetOrCreateTimesheet_ReturnsExisting(t *testing.T) {
	existing := &models.Timesheet{ID: 7, EmployeeID: 4, WeekStarting: monday()}
	tsRepo := &mockTimesheetRepo{
		mockFindByEmployeeAndWeek: func(ctx context.Context, employeeID uint, weekStarting time.Time) (*models.Timesheet, error) {
			return existing, nil
		},
		mockCreate: func(ctx context.Context, timesheet *models.Timesheet) error {
			t.Fatal("Create must not be called when the timesheet exists")
			return nil
		},
	}
	service := NewTimesheetService(nil, tsRepo, nil, hierarchyRepo(), nil)

	sheet, err := service.GetOrCreateTimesheet(context.Background(), 4, monday())
	assert.NoError(t, err)
	assert.Equal(t, uint(7), sheet.ID)

	// Second call resolves to the same row.
	again, err := service.GetOrCreateTimesheet(context.Background(), 4, monday())
	assert.NoError(t, err)
	assert.Equal(t, sheet.ID, again.ID)
}

func TestGetOrCreateTimesheet_CreatesWithDerivedWeekEnding(t *testing.T) {
	var created *models.Timesheet
	tsRepo := &mockTimesheetRepo{
		mockFindByEmployeeAndWeek: func(ctx context.Context, employeeID uint, weekStarting time.Time) (*models.Timesheet, error) {
			return nil, gorm.ErrRecordNotFound
		},
		mockCreate: func(ctx context.Context, timesheet *models.Timesheet) error {
			timesheet.ID = 11
			created = timesheet
			return nil
		},
	}
	service := NewTimesheetService(nil, tsRepo, nil, hierarchyRepo(), nil)

	// Time-of-day on the requested week start must not leak into the row.
	requested := monday().Add(9*time.Hour + 30*time.Minute)
	sheet, err := service.GetOrCreateTimesheet(context.Background(), 4, requested)
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, monday(), sheet.WeekStarting)
	assert.Equal(t, monday().AddDate(0, 0, 6), sheet.WeekEnding)
	assert.Equal(t, uint(4), sheet.EmployeeID)
}

func TestGetOrCreateTimesheet_LosingInsertRaceRefetches(t *testing.T) {
	winner := &models.Timesheet{ID: 20, EmployeeID: 4, WeekStarting: monday()}
	lookups := 0
	tsRepo := &mockTimesheetRepo{
		mockFindByEmployeeAndWeek: func(ctx context.Context, employeeID uint, weekStarting time.Time) (*models.Timesheet, error) {
			lookups++
			if lookups == 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return winner, nil
		},
		mockCreate: func(ctx context.Context, timesheet *models.Timesheet) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_timesheets_employee_week"}
		},
	}
	service := NewTimesheetService(nil, tsRepo, nil, hierarchyRepo(), nil)

	sheet, err := service.GetOrCreateTimesheet(context.Background(), 4, monday())
	assert.NoError(t, err)
	assert.Equal(t, uint(20), sheet.ID)
	assert.Equal(t, 2, lookups)
}

func TestGetOrCreateTimesheet_UnknownEmployee(t *testing.T) {
	service := NewTimesheetService(nil, &mockTimesheetRepo{}, nil, hierarchyRepo(), nil)

	_, err := service.GetOrCreateTimesheet(context.Background(), 99, monday())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "employee")
}

func TestBulkSave_EmptyInput(t *testing.T) {
	service := NewTimesheetService(nil, &mockTimesheetRepo{}, nil, hierarchyRepo(), nil)

	_, err := service.BulkSave(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSameProjectRef(t *testing.T) {
	assert.True(t, sameProjectRef(nil, nil))
	assert.True(t, sameProjectRef(uintPtr(3), uintPtr(3)))
	assert.False(t, sameProjectRef(uintPtr(3), uintPtr(4)))
	assert.False(t, sameProjectRef(nil, uintPtr(3)))
	assert.False(t, sameProjectRef(uintPtr(3), nil))
}

func TestTruncateToDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	stamped := time.Date(2026, 3, 2, 14, 45, 30, 999, loc)
	got := truncateToDate(stamped)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)
}
