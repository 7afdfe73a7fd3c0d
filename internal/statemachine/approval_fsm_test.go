package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrsuite/timetrack-api/internal/models"
)

func pendingApproval() *models.ProjectApproval {
	return &models.ProjectApproval{ID: 1, Status: models.ApprovalStatusPending}
}

func TestApprovalFSM_ApproveFromPending(t *testing.T) {
	approval := pendingApproval()
	machine := NewApprovalFSM(approval)

	err := machine.Approve(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, approval.Status)
	assert.Equal(t, models.ApprovalStatusApproved, machine.Current())
}

func TestApprovalFSM_RejectFromPending(t *testing.T) {
	approval := pendingApproval()
	machine := NewApprovalFSM(approval)

	err := machine.Reject(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusRejected, approval.Status)
}

func TestApprovalFSM_DoubleReviewRejected(t *testing.T) {
	approval := pendingApproval()
	machine := NewApprovalFSM(approval)

	assert.NoError(t, machine.Approve(context.Background()))
	assert.Error(t, machine.Reject(context.Background()))
	assert.Error(t, machine.Approve(context.Background()))
	assert.Equal(t, models.ApprovalStatusApproved, approval.Status)
}

func TestApprovalFSM_ReopenCycle(t *testing.T) {
	approval := pendingApproval()
	machine := NewApprovalFSM(approval)

	// pending cannot reopen
	assert.Error(t, machine.Reopen(context.Background()))

	assert.NoError(t, machine.Reject(context.Background()))
	assert.NoError(t, machine.Reopen(context.Background()))
	assert.Equal(t, models.ApprovalStatusPending, approval.Status)

	// A reopened approval accepts a fresh disposition.
	machine = NewApprovalFSM(approval)
	assert.NoError(t, machine.Approve(context.Background()))
	assert.Equal(t, models.ApprovalStatusApproved, approval.Status)
}

func TestApprovalFSM_Can(t *testing.T) {
	machine := NewApprovalFSM(pendingApproval())
	assert.True(t, machine.Can("approve"))
	assert.True(t, machine.Can("reject"))
	assert.False(t, machine.Can("reopen"))
}
