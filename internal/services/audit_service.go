package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/pkg/logger"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log records an audit entry. Failures are logged but never propagated:
// auditing must not abort the action it describes. A nil service is a no-op.
func (s *AuditService) Log(ctx context.Context, actorID uint, action, entity string, entityID uint, details string) {
	if s == nil {
		return
	}
	entry := &models.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	// Actor 0 means no X-Actor-Id was supplied; store NULL rather than a
	// reference no employee row satisfies.
	if actorID != 0 {
		entry.ActorID = &actorID
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Error("failed to record audit entry", "entity", entity, "action", action, "error", err)
	}
}

// List retrieves audit logs, newest first
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	if err := s.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := s.db.WithContext(ctx).Preload("Actor").Order("created_at desc").Limit(limit).Offset(offset).Find(&logs)
	return logs, total, result.Error
}
