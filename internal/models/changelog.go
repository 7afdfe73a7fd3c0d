package models

import (
	"time"
)

// DailyLogChange is an append-only audit record written whenever a daily
// log's description or project assignment actually changes value. Rows are
// never updated after creation; they only go away when their daily log does.
type DailyLogChange struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DailyLogID     uint      `gorm:"not null;index" json:"daily_log_id"`
	ProjectID      *uint     `json:"project_id"`
	ChangedAt      time.Time `gorm:"not null" json:"changed_at"`
	NewDescription string    `gorm:"type:text;not null" json:"new_description"`

	// Associations
	DailyLog  *DailyLog         `gorm:"foreignKey:DailyLogID" json:"-"`
	Project   *Project          `gorm:"foreignKey:ProjectID" json:"-"`
	Approvals []ProjectApproval `gorm:"foreignKey:DailyLogChangeID;constraint:OnDelete:CASCADE" json:"approvals,omitempty"`
}

// TableName specifies the table name for DailyLogChange
func (DailyLogChange) TableName() string {
	return "daily_log_changes"
}

// DailyLogChangeResponse is the JSON response format for change records
type DailyLogChangeResponse struct {
	ID             uint   `json:"id"`
	DailyLogID     uint   `json:"daily_log_id"`
	ProjectID      *uint  `json:"project_id"`
	ChangedAt      string `json:"changed_at"`
	NewDescription string `json:"new_description"`
}

// ToResponse converts DailyLogChange to DailyLogChangeResponse
func (c *DailyLogChange) ToResponse() DailyLogChangeResponse {
	return DailyLogChangeResponse{
		ID:             c.ID,
		DailyLogID:     c.DailyLogID,
		ProjectID:      c.ProjectID,
		ChangedAt:      c.ChangedAt.Format(time.RFC3339),
		NewDescription: c.NewDescription,
	}
}

// ProjectApproval records a manager's disposition of one change record
type ProjectApproval struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	DailyLogChangeID uint       `gorm:"not null;index" json:"daily_log_change_id"`
	ManagerID        *uint      `json:"manager_id"`
	Status           string     `gorm:"size:20;not null;default:pending" json:"status"`
	Comments         string     `gorm:"type:text" json:"comments"`
	ReviewedAt       *time.Time `json:"reviewed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	DailyLogChange *DailyLogChange `gorm:"foreignKey:DailyLogChangeID" json:"-"`
	Manager        *Employee       `gorm:"foreignKey:ManagerID" json:"-"`
}

// TableName specifies the table name for ProjectApproval
func (ProjectApproval) TableName() string {
	return "project_approvals"
}

// Approval status constants
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// ValidApprovalStatus reports whether status is one of the known dispositions.
func ValidApprovalStatus(status string) bool {
	switch status {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// IsReviewed returns true once a manager has approved or rejected the change
func (a *ProjectApproval) IsReviewed() bool {
	return a.Status == ApprovalStatusApproved || a.Status == ApprovalStatusRejected
}

// MayApprove returns true if the approval can move to approved
func (a *ProjectApproval) MayApprove() bool {
	return a.Status == ApprovalStatusPending
}

// MayReject returns true if the approval can move to rejected
func (a *ProjectApproval) MayReject() bool {
	return a.Status == ApprovalStatusPending
}

// MayReopen returns true if a reviewed approval can return to pending
func (a *ProjectApproval) MayReopen() bool {
	return a.IsReviewed()
}

// ProjectApprovalResponse is the JSON response format for approvals
type ProjectApprovalResponse struct {
	ID               uint    `json:"id"`
	DailyLogChangeID uint    `json:"daily_log_change_id"`
	ManagerID        *uint   `json:"manager_id"`
	Status           string  `json:"status"`
	Comments         string  `json:"comments"`
	ReviewedAt       *string `json:"reviewed_at"`
}

// ToResponse converts ProjectApproval to ProjectApprovalResponse
func (a *ProjectApproval) ToResponse() ProjectApprovalResponse {
	resp := ProjectApprovalResponse{
		ID:               a.ID,
		DailyLogChangeID: a.DailyLogChangeID,
		ManagerID:        a.ManagerID,
		Status:           a.Status,
		Comments:         a.Comments,
	}
	if a.ReviewedAt != nil {
		reviewed := a.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewed
	}
	return resp
}
