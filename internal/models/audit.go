package models

import (
	"time"
)

// AuditLog records an administrative action against an entity. This is the
// operator-facing trail; the domain-level edit history of daily logs lives
// in DailyLogChange.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   *uint     `gorm:"index" json:"actor_id"`          // nil for anonymous callers
	Action    string    `gorm:"size:50;not null" json:"action"` // CREATE, UPDATE, DELETE, APPROVE
	Entity    string    `gorm:"size:50;not null" json:"entity"` // Employee, Department, Project, etc.
	EntityID  uint      `json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Actor *Employee `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
