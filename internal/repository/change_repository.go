package repository

import (
	"context"
	"time"

	"github.com/hrsuite/timetrack-api/internal/models"
	"gorm.io/gorm"
)

// ChangeRepository defines the interface for change-record data access.
// Change records are append-only: there is no update and no standalone
// delete; they are removed only when their daily log is.
type ChangeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.DailyLogChange, error)
	Create(ctx context.Context, change *models.DailyLogChange) error
	FindByDailyLog(ctx context.Context, dailyLogID uint) ([]models.DailyLogChange, error)
	FindAll(ctx context.Context) ([]models.DailyLogChange, error)
}

type changeRepository struct {
	db *gorm.DB
}

// NewChangeRepository creates a new change-record repository
func NewChangeRepository(db *gorm.DB) ChangeRepository {
	return &changeRepository{db: db}
}

func (r *changeRepository) FindByID(ctx context.Context, id uint) (*models.DailyLogChange, error) {
	var change models.DailyLogChange
	err := r.db.WithContext(ctx).First(&change, id).Error
	if err != nil {
		return nil, err
	}
	return &change, nil
}

func (r *changeRepository) Create(ctx context.Context, change *models.DailyLogChange) error {
	return r.db.WithContext(ctx).Create(change).Error
}

func (r *changeRepository) FindByDailyLog(ctx context.Context, dailyLogID uint) ([]models.DailyLogChange, error) {
	var changes []models.DailyLogChange
	err := r.db.WithContext(ctx).
		Where("daily_log_id = ?", dailyLogID).
		Order("changed_at DESC, id DESC").
		Find(&changes).Error
	return changes, err
}

func (r *changeRepository) FindAll(ctx context.Context) ([]models.DailyLogChange, error) {
	var changes []models.DailyLogChange
	err := r.db.WithContext(ctx).
		Order("changed_at DESC, id DESC").
		Find(&changes).Error
	return changes, err
}

// ApprovalRepository defines the interface for approval data access
type ApprovalRepository interface {
	FindByID(ctx context.Context, id uint) (*models.ProjectApproval, error)
	Create(ctx context.Context, approval *models.ProjectApproval) error
	Update(ctx context.Context, approval *models.ProjectApproval) error
	FindByChange(ctx context.Context, changeID uint) ([]models.ProjectApproval, error)
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.ProjectApproval, error)
}

type approvalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository creates a new approval repository
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) FindByID(ctx context.Context, id uint) (*models.ProjectApproval, error) {
	var approval models.ProjectApproval
	err := r.db.WithContext(ctx).First(&approval, id).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) Create(ctx context.Context, approval *models.ProjectApproval) error {
	return r.db.WithContext(ctx).Create(approval).Error
}

func (r *approvalRepository) Update(ctx context.Context, approval *models.ProjectApproval) error {
	return r.db.WithContext(ctx).Save(approval).Error
}

func (r *approvalRepository) FindByChange(ctx context.Context, changeID uint) ([]models.ProjectApproval, error) {
	var approvals []models.ProjectApproval
	err := r.db.WithContext(ctx).
		Where("daily_log_change_id = ?", changeID).
		Order("created_at DESC, id DESC").
		Find(&approvals).Error
	return approvals, err
}

func (r *approvalRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.ProjectApproval, error) {
	var approvals []models.ProjectApproval
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.ApprovalStatusPending, cutoff).
		Order("created_at ASC").
		Find(&approvals).Error
	return approvals, err
}
