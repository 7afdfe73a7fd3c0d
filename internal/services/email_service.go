package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/hrsuite/timetrack-api/internal/config"
	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

// SendApprovalRequested notifies a manager that a timesheet correction is
// waiting for their review.
func (s *EmailService) SendApprovalRequested(ctx context.Context, manager *models.Employee, change *models.DailyLogChange, employeeName string) error {
	data := struct {
		ManagerName    string
		EmployeeName   string
		NewDescription string
		ChangedAt      string
		AppURL         string
	}{
		ManagerName:    manager.Name,
		EmployeeName:   employeeName,
		NewDescription: change.NewDescription,
		ChangedAt:      change.ChangedAt.Format("02/01/2006 15:04"),
		AppURL:         s.config.AppURL,
	}

	body, err := s.renderTemplate("approval_requested.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{manager.Email},
		Subject: "Timesheet correction awaiting review",
		Html:    body,
	}
	if _, err := s.resendClient.Emails.Send(params); err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", manager.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Timesheet correction awaiting review", manager.Email))
	return nil
}

// SendApprovalReviewed tells the employee how their correction was decided.
func (s *EmailService) SendApprovalReviewed(ctx context.Context, employee *models.Employee, approval *models.ProjectApproval) error {
	reviewedAt := ""
	if approval.ReviewedAt != nil {
		reviewedAt = approval.ReviewedAt.Format("02/01/2006 15:04")
	}

	data := struct {
		Name       string
		Status     string
		Comments   string
		ReviewedAt string
		AppURL     string
	}{
		Name:       employee.Name,
		Status:     approval.Status,
		Comments:   approval.Comments,
		ReviewedAt: reviewedAt,
		AppURL:     s.config.AppURL,
	}

	body, err := s.renderTemplate("approval_reviewed.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{employee.Email},
		Subject: "Your timesheet correction was reviewed",
		Html:    body,
	}
	if _, err := s.resendClient.Emails.Send(params); err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", employee.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Your timesheet correction was reviewed", employee.Email))
	return nil
}

// SendApprovalReminder nudges a manager about a correction that has sat in
// pending longer than the configured threshold.
func (s *EmailService) SendApprovalReminder(ctx context.Context, manager *models.Employee, pendingSince time.Time, count int) error {
	data := struct {
		ManagerName  string
		PendingSince string
		Count        int
		AppURL       string
	}{
		ManagerName:  manager.Name,
		PendingSince: pendingSince.Format("02/01/2006"),
		Count:        count,
		AppURL:       s.config.AppURL,
	}

	body, err := s.renderTemplate("approval_reminder.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{manager.Email},
		Subject: "Pending timesheet corrections need your review",
		Html:    body,
	}
	if _, err := s.resendClient.Emails.Send(params); err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", manager.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Pending timesheet corrections need your review", manager.Email))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
