package services

import (
	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/config"
	"github.com/hrsuite/timetrack-api/internal/jobs"
	"github.com/hrsuite/timetrack-api/internal/repository"
	"github.com/hrsuite/timetrack-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Employee     *EmployeeService
	Department   *DepartmentService
	Project      *ProjectService
	Timesheet    *TimesheetService
	Approval     *ApprovalService
	Notification *NotificationService
	Email        *EmailService
	Audit        *AuditService
	Export       *ExportService
	Report       *ReportService
	Job          *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config, db *gorm.DB) *Services {
	auditSvc := NewAuditService(db)
	emailSvc := NewEmailService(cfg)
	notificationSvc := NewNotificationService(repos.Notification, repos.Employee)

	employeeSvc := NewEmployeeService(repos.Employee, repos.Department, repos.Designation, repos.Timesheet, auditSvc)
	timesheetSvc := NewTimesheetService(db, repos.Timesheet, repos.DailyLog, repos.Employee, auditSvc)
	approvalSvc := NewApprovalService(repos.Approval, repos.Change, repos.DailyLog, repos.Timesheet, repos.Employee,
		notificationSvc, emailSvc, auditSvc, worker)

	return &Services{
		Employee:     employeeSvc,
		Department:   NewDepartmentService(repos.Department, repos.Designation, auditSvc),
		Project:      NewProjectService(repos.Project, repos.Employee, auditSvc),
		Timesheet:    timesheetSvc,
		Approval:     approvalSvc,
		Notification: notificationSvc,
		Email:        emailSvc,
		Audit:        auditSvc,
		Export:       NewExportService(timesheetSvc, employeeSvc),
		Report:       NewReportService(timesheetSvc, employeeSvc, store),
		Job:          NewJobService(worker),
	}
}
