package services

import (
	"context"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

type NotificationService struct {
	repo    repository.NotificationRepository
	empRepo repository.EmployeeRepository
}

func NewNotificationService(repo repository.NotificationRepository, empRepo repository.EmployeeRepository) *NotificationService {
	return &NotificationService{repo: repo, empRepo: empRepo}
}

func (s *NotificationService) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "notification")
	}
	return notification, nil
}

func (s *NotificationService) FindByEmployee(ctx context.Context, employeeID uint, query *repository.ListQuery) ([]models.Notification, int64, error) {
	return s.repo.FindByEmployee(ctx, employeeID, query)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uint) error {
	notification, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	notification.MarkAsRead()
	return s.repo.Update(ctx, notification)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, employeeID uint) error {
	return s.repo.MarkAllAsRead(ctx, employeeID)
}

func (s *NotificationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *NotificationService) NotifyEmployee(ctx context.Context, employeeID uint, title, message, notifType string) error {
	notification := &models.Notification{
		EmployeeID:       employeeID,
		Title:            title,
		Message:          message,
		NotificationType: &notifType,
	}
	return s.repo.Create(ctx, notification)
}
