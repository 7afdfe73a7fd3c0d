package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Employee     EmployeeRepository
	Department   DepartmentRepository
	Designation  DesignationRepository
	Project      ProjectRepository
	Timesheet    TimesheetRepository
	DailyLog     DailyLogRepository
	Change       ChangeRepository
	Approval     ApprovalRepository
	Notification NotificationRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Employee:     NewEmployeeRepository(db),
		Department:   NewDepartmentRepository(db),
		Designation:  NewDesignationRepository(db),
		Project:      NewProjectRepository(db),
		Timesheet:    NewTimesheetRepository(db),
		DailyLog:     NewDailyLogRepository(db),
		Change:       NewChangeRepository(db),
		Approval:     NewApprovalRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// IsDuplicateKeyError reports whether err is a Postgres unique violation,
// optionally restricted to a named constraint. An empty constraint matches
// any unique violation.
func IsDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return false
		}
		return constraintName == "" || pgErr.ConstraintName == constraintName
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}
