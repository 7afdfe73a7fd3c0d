package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/jobs"
	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

// Mock ChangeRepository
type mockChangeRepo struct {
	repository.ChangeRepository
	mockFindByID func(ctx context.Context, id uint) (*models.DailyLogChange, error)
}

func (m *mockChangeRepo) FindByID(ctx context.Context, id uint) (*models.DailyLogChange, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

// Mock ApprovalRepository
type mockApprovalRepo struct {
	repository.ApprovalRepository
	mockFindByID func(ctx context.Context, id uint) (*models.ProjectApproval, error)
	mockCreate   func(ctx context.Context, approval *models.ProjectApproval) error
	mockUpdate   func(ctx context.Context, approval *models.ProjectApproval) error
}

func (m *mockApprovalRepo) FindByID(ctx context.Context, id uint) (*models.ProjectApproval, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockApprovalRepo) Create(ctx context.Context, approval *models.ProjectApproval) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, approval)
	}
	approval.ID = 1
	return nil
}

func (m *mockApprovalRepo) Update(ctx context.Context, approval *models.ProjectApproval) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, approval)
	}
	return nil
}

// Mock DailyLogRepository
type mockDailyLogRepo struct {
	repository.DailyLogRepository
	mockFindByID func(ctx context.Context, id uint) (*models.DailyLog, error)
}

func (m *mockDailyLogRepo) FindByID(ctx context.Context, id uint) (*models.DailyLog, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func knownChangeRepo() *mockChangeRepo {
	return &mockChangeRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.DailyLogChange, error) {
			return &models.DailyLogChange{ID: id, DailyLogID: 9, NewDescription: "fixed description"}, nil
		},
	}
}

func TestFileApproval_InvalidStatus(t *testing.T) {
	service := NewApprovalService(&mockApprovalRepo{}, knownChangeRepo(), &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	_, err := service.FileApproval(context.Background(), 1, nil, "maybe", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "invalid approval status")
}

func TestFileApproval_UnknownChange(t *testing.T) {
	service := NewApprovalService(&mockApprovalRepo{}, &mockChangeRepo{}, &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	_, err := service.FileApproval(context.Background(), 42, nil, models.ApprovalStatusPending, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "change record")
}

func TestFileApproval_PendingLeavesReviewedAtUnset(t *testing.T) {
	service := NewApprovalService(&mockApprovalRepo{}, knownChangeRepo(), &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	approval, err := service.FileApproval(context.Background(), 1, nil, models.ApprovalStatusPending, "")
	assert.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPending, approval.Status)
	assert.Nil(t, approval.ReviewedAt)
	assert.Nil(t, approval.ManagerID)
}

func TestFileApproval_ReviewedStampsReviewedAt(t *testing.T) {
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()

	// The daily log lookup failing keeps the async notification a no-op.
	service := NewApprovalService(&mockApprovalRepo{}, knownChangeRepo(), &mockDailyLogRepo{}, nil, nil, nil, nil, nil, worker)

	for _, status := range []string{models.ApprovalStatusApproved, models.ApprovalStatusRejected} {
		approval, err := service.FileApproval(context.Background(), 1, nil, status, "looks fine")
		assert.NoError(t, err)
		assert.Equal(t, status, approval.Status)
		assert.NotNil(t, approval.ReviewedAt)
		assert.WithinDuration(t, time.Now().UTC(), *approval.ReviewedAt, 5*time.Second)
	}
}

func TestReview_PendingToApproved(t *testing.T) {
	var updated *models.ProjectApproval
	repo := &mockApprovalRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.ProjectApproval, error) {
			return &models.ProjectApproval{ID: id, DailyLogChangeID: 1, Status: models.ApprovalStatusPending}, nil
		},
		mockUpdate: func(ctx context.Context, approval *models.ProjectApproval) error {
			updated = approval
			return nil
		},
	}
	service := NewApprovalService(repo, &mockChangeRepo{}, &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	approval, err := service.Review(context.Background(), 5, models.ApprovalStatusApproved, "ok")
	assert.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, approval.Status)
	assert.NotNil(t, approval.ReviewedAt)
	assert.Equal(t, "ok", approval.Comments)
	assert.NotNil(t, updated)
}

func TestReview_AlreadyReviewedConflicts(t *testing.T) {
	repo := &mockApprovalRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.ProjectApproval, error) {
			return &models.ProjectApproval{ID: id, Status: models.ApprovalStatusApproved}, nil
		},
	}
	service := NewApprovalService(repo, &mockChangeRepo{}, &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	_, err := service.Review(context.Background(), 5, models.ApprovalStatusRejected, "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestReview_PendingIsNotADisposition(t *testing.T) {
	service := NewApprovalService(&mockApprovalRepo{}, &mockChangeRepo{}, &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	_, err := service.Review(context.Background(), 5, models.ApprovalStatusPending, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReopen_ClearsReviewedAt(t *testing.T) {
	reviewedAt := time.Now().UTC()
	repo := &mockApprovalRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.ProjectApproval, error) {
			return &models.ProjectApproval{ID: id, Status: models.ApprovalStatusRejected, ReviewedAt: &reviewedAt}, nil
		},
	}
	service := NewApprovalService(repo, &mockChangeRepo{}, &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	approval, err := service.Reopen(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPending, approval.Status)
	assert.Nil(t, approval.ReviewedAt)
}

func TestReopen_PendingConflicts(t *testing.T) {
	repo := &mockApprovalRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.ProjectApproval, error) {
			return &models.ProjectApproval{ID: id, Status: models.ApprovalStatusPending}, nil
		},
	}
	service := NewApprovalService(repo, &mockChangeRepo{}, &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	_, err := service.Reopen(context.Background(), 5)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestListChangesForLog_UnknownLog(t *testing.T) {
	service := NewApprovalService(&mockApprovalRepo{}, &mockChangeRepo{}, &mockDailyLogRepo{}, nil, nil, nil, nil, nil, nil)

	_, err := service.ListChangesForLog(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "daily log")
}
