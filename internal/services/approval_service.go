package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hrsuite/timetrack-api/internal/jobs"
	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
	"github.com/hrsuite/timetrack-api/internal/statemachine"
	"github.com/hrsuite/timetrack-api/pkg/logger"
)

// ApprovalService tracks manager review of daily log change records. It never
// creates change records itself; those are appended by the timesheet service
// when an edit is observed.
type ApprovalService struct {
	repo       repository.ApprovalRepository
	changeRepo repository.ChangeRepository
	logRepo    repository.DailyLogRepository
	tsRepo     repository.TimesheetRepository
	empRepo    repository.EmployeeRepository
	notifSvc   *NotificationService
	emailSvc   *EmailService
	auditSvc   *AuditService
	worker     *jobs.Worker
}

func NewApprovalService(
	repo repository.ApprovalRepository,
	changeRepo repository.ChangeRepository,
	logRepo repository.DailyLogRepository,
	tsRepo repository.TimesheetRepository,
	empRepo repository.EmployeeRepository,
	notifSvc *NotificationService,
	emailSvc *EmailService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *ApprovalService {
	return &ApprovalService{
		repo:       repo,
		changeRepo: changeRepo,
		logRepo:    logRepo,
		tsRepo:     tsRepo,
		empRepo:    empRepo,
		notifSvc:   notifSvc,
		emailSvc:   emailSvc,
		auditSvc:   auditSvc,
		worker:     worker,
	}
}

func (s *ApprovalService) FindByID(ctx context.Context, id uint) (*models.ProjectApproval, error) {
	approval, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "approval")
	}
	return approval, nil
}

// FileApproval records a manager's disposition of one change record. Pending
// leaves reviewed_at unset; approved and rejected stamp it with the current
// time.
func (s *ApprovalService) FileApproval(ctx context.Context, changeID uint, managerID *uint, status, comments string) (*models.ProjectApproval, error) {
	if !models.ValidApprovalStatus(status) {
		return nil, validationErrorf("invalid approval status: %s", status)
	}

	change, err := s.changeRepo.FindByID(ctx, changeID)
	if err != nil {
		return nil, translateNotFound(err, "change record")
	}

	var manager *models.Employee
	if managerID != nil {
		manager, err = s.empRepo.FindByID(ctx, *managerID)
		if err != nil {
			return nil, translateNotFound(err, "manager")
		}
	}

	approval := &models.ProjectApproval{
		DailyLogChangeID: changeID,
		ManagerID:        managerID,
		Status:           status,
		Comments:         comments,
	}
	if approval.IsReviewed() {
		now := time.Now().UTC()
		approval.ReviewedAt = &now
	}

	if err := s.repo.Create(ctx, approval); err != nil {
		return nil, err
	}

	actorID := uint(0)
	if managerID != nil {
		actorID = *managerID
	}
	s.auditSvc.Log(ctx, actorID, "CREATE", "ProjectApproval", approval.ID,
		fmt.Sprintf("approval filed with status %s for change %d", status, changeID))

	switch {
	case approval.Status == models.ApprovalStatusPending && manager != nil:
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			s.notifyManager(ctx, manager, change)
			return nil
		})
	case approval.IsReviewed():
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			s.notifyEmployee(ctx, change, approval)
			return nil
		})
	}

	return approval, nil
}

// Review moves a pending approval to approved or rejected and stamps
// reviewed_at. A disposition the state machine forbids fails with Conflict.
func (s *ApprovalService) Review(ctx context.Context, id uint, status, comments string) (*models.ProjectApproval, error) {
	if status != models.ApprovalStatusApproved && status != models.ApprovalStatusRejected {
		return nil, validationErrorf("invalid review disposition: %s", status)
	}

	approval, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	machine := statemachine.NewApprovalFSM(approval)
	if status == models.ApprovalStatusApproved {
		err = machine.Approve(ctx)
	} else {
		err = machine.Reject(ctx)
	}
	if err != nil {
		return nil, conflictErrorf("%v", err)
	}

	now := time.Now().UTC()
	approval.ReviewedAt = &now
	if comments != "" {
		approval.Comments = comments
	}

	if err := s.repo.Update(ctx, approval); err != nil {
		return nil, err
	}

	actorID := uint(0)
	if approval.ManagerID != nil {
		actorID = *approval.ManagerID
	}
	s.auditSvc.Log(ctx, actorID, "APPROVE", "ProjectApproval", approval.ID,
		fmt.Sprintf("approval %s", approval.Status))

	if change, cerr := s.changeRepo.FindByID(ctx, approval.DailyLogChangeID); cerr == nil {
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			s.notifyEmployee(ctx, change, approval)
			return nil
		})
	}

	return approval, nil
}

// Reopen returns a reviewed approval to pending and clears reviewed_at.
func (s *ApprovalService) Reopen(ctx context.Context, id uint) (*models.ProjectApproval, error) {
	approval, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	machine := statemachine.NewApprovalFSM(approval)
	if err := machine.Reopen(ctx); err != nil {
		return nil, conflictErrorf("%v", err)
	}

	approval.ReviewedAt = nil
	if err := s.repo.Update(ctx, approval); err != nil {
		return nil, err
	}
	return approval, nil
}

// ListApprovals returns the approvals filed against a change record, newest
// first.
func (s *ApprovalService) ListApprovals(ctx context.Context, changeID uint) ([]models.ProjectApproval, error) {
	if _, err := s.changeRepo.FindByID(ctx, changeID); err != nil {
		return nil, translateNotFound(err, "change record")
	}
	return s.repo.FindByChange(ctx, changeID)
}

// ListChangesForLog returns a daily log's change history, newest first.
func (s *ApprovalService) ListChangesForLog(ctx context.Context, logID uint) ([]models.DailyLogChange, error) {
	if _, err := s.logRepo.FindByID(ctx, logID); err != nil {
		return nil, translateNotFound(err, "daily log")
	}
	return s.changeRepo.FindByDailyLog(ctx, logID)
}

// RemindStale nudges managers holding approvals that have sat in pending
// longer than maxAge. Called from the background reminder job.
func (s *ApprovalService) RemindStale(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().UTC().Add(-maxAge)
	stale, err := s.repo.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	type bucket struct {
		oldest time.Time
		count  int
	}
	byManager := make(map[uint]*bucket)
	for i := range stale {
		if stale[i].ManagerID == nil {
			continue
		}
		b, ok := byManager[*stale[i].ManagerID]
		if !ok {
			b = &bucket{oldest: stale[i].CreatedAt}
			byManager[*stale[i].ManagerID] = b
		}
		if stale[i].CreatedAt.Before(b.oldest) {
			b.oldest = stale[i].CreatedAt
		}
		b.count++
	}

	for managerID, b := range byManager {
		manager, err := s.empRepo.FindByID(ctx, managerID)
		if err != nil {
			logger.Warn("skipping stale-approval reminder, manager lookup failed",
				"manager_id", managerID, "error", err)
			continue
		}
		if err := s.notifSvc.NotifyEmployee(ctx, managerID,
			"Pending corrections",
			fmt.Sprintf("You have %d timesheet correction(s) awaiting review", b.count),
			models.NotificationTypeApprovalStale); err != nil {
			logger.Warn("failed to create stale-approval notification", "manager_id", managerID, "error", err)
		}
		if err := s.emailSvc.SendApprovalReminder(ctx, manager, b.oldest, b.count); err != nil {
			logger.Warn("failed to send stale-approval reminder", "manager_id", managerID, "error", err)
		}
	}
	return nil
}

// notifyManager records an in-app notice and emails the manager about a
// change awaiting review. Failures are logged, never propagated.
func (s *ApprovalService) notifyManager(ctx context.Context, manager *models.Employee, change *models.DailyLogChange) {
	employeeName := s.changeAuthorName(ctx, change)
	if err := s.notifSvc.NotifyEmployee(ctx, manager.ID,
		"Correction awaiting review",
		fmt.Sprintf("%s edited a daily log and the change needs your review", employeeName),
		models.NotificationTypeApprovalRequested); err != nil {
		logger.Warn("failed to create approval notification", "manager_id", manager.ID, "error", err)
	}
	if err := s.emailSvc.SendApprovalRequested(ctx, manager, change, employeeName); err != nil {
		logger.Warn("failed to send approval email", "manager_id", manager.ID, "error", err)
	}
}

// notifyEmployee tells the log's owner how their correction was decided.
func (s *ApprovalService) notifyEmployee(ctx context.Context, change *models.DailyLogChange, approval *models.ProjectApproval) {
	employee := s.changeAuthor(ctx, change)
	if employee == nil {
		return
	}
	if err := s.notifSvc.NotifyEmployee(ctx, employee.ID,
		"Correction reviewed",
		fmt.Sprintf("Your timesheet correction was %s", approval.Status),
		models.NotificationTypeApprovalReviewed); err != nil {
		logger.Warn("failed to create review notification", "employee_id", employee.ID, "error", err)
	}
	if err := s.emailSvc.SendApprovalReviewed(ctx, employee, approval); err != nil {
		logger.Warn("failed to send review email", "employee_id", employee.ID, "error", err)
	}
}

// changeAuthor walks change -> daily log -> timesheet -> employee
func (s *ApprovalService) changeAuthor(ctx context.Context, change *models.DailyLogChange) *models.Employee {
	log, err := s.logRepo.FindByID(ctx, change.DailyLogID)
	if err != nil {
		return nil
	}
	timesheet, err := s.tsRepo.FindByID(ctx, log.TimesheetID)
	if err != nil {
		return nil
	}
	employee, err := s.empRepo.FindByID(ctx, timesheet.EmployeeID)
	if err != nil {
		return nil
	}
	return employee
}

func (s *ApprovalService) changeAuthorName(ctx context.Context, change *models.DailyLogChange) string {
	if employee := s.changeAuthor(ctx, change); employee != nil {
		return employee.Name
	}
	return "An employee"
}
