package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrsuite/timetrack-api/internal/models"
)

func TestAuditLog_AnonymousActorStoresNull(t *testing.T) {
	db := openTestDB(t)
	service := NewAuditService(db)

	// Actor 0 is "no X-Actor-Id header"; the row must carry NULL, not a
	// reference to a nonexistent employee 0.
	service.Log(context.Background(), 0, "DELETE", "Department", 3, "department deleted")

	var entry models.AuditLog
	assert.NoError(t, db.First(&entry).Error)
	assert.Nil(t, entry.ActorID)
	assert.Equal(t, "DELETE", entry.Action)
	assert.Equal(t, "Department", entry.Entity)
}

func TestAuditLog_KnownActorStored(t *testing.T) {
	db := openTestDB(t)
	employee := &models.Employee{Name: "Dana", Email: "dana@acme.test"}
	assert.NoError(t, db.Create(employee).Error)

	service := NewAuditService(db)
	service.Log(context.Background(), employee.ID, "UPDATE", "Employee", employee.ID, "employee updated")

	var entry models.AuditLog
	assert.NoError(t, db.First(&entry).Error)
	assert.NotNil(t, entry.ActorID)
	assert.Equal(t, employee.ID, *entry.ActorID)
}

func TestAuditList_NewestFirstWithActor(t *testing.T) {
	db := openTestDB(t)
	employee := &models.Employee{Name: "Dana", Email: "dana@acme.test"}
	assert.NoError(t, db.Create(employee).Error)

	service := NewAuditService(db)
	service.Log(context.Background(), employee.ID, "CREATE", "Project", 1, "first")
	service.Log(context.Background(), 0, "DELETE", "Project", 1, "second")

	entries, total, err := service.List(context.Background(), 10, 0)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, entries, 2)
}
