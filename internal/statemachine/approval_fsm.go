package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/hrsuite/timetrack-api/internal/models"
)

// ApprovalFSM wraps a project approval with its state machine
type ApprovalFSM struct {
	approval *models.ProjectApproval
	fsm      *fsm.FSM
}

// NewApprovalFSM creates a state machine seeded with the approval's current status
func NewApprovalFSM(approval *models.ProjectApproval) *ApprovalFSM {
	a := &ApprovalFSM{
		approval: approval,
	}

	a.fsm = fsm.NewFSM(
		approval.Status,
		fsm.Events{
			// pending → approved
			{Name: "approve", Src: []string{models.ApprovalStatusPending}, Dst: models.ApprovalStatusApproved},

			// pending → rejected
			{Name: "reject", Src: []string{models.ApprovalStatusPending}, Dst: models.ApprovalStatusRejected},

			// approved/rejected → pending (reopen for another review)
			{Name: "reopen", Src: []string{models.ApprovalStatusApproved, models.ApprovalStatusRejected}, Dst: models.ApprovalStatusPending},
		},
		fsm.Callbacks{},
	)

	return a
}

// Approve transitions the approval to approved
func (a *ApprovalFSM) Approve(ctx context.Context) error {
	if !a.approval.MayApprove() {
		return fmt.Errorf("approval cannot be approved in current state: %s", a.approval.Status)
	}

	if err := a.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("failed to approve change: %w", err)
	}

	a.approval.Status = a.fsm.Current()
	return nil
}

// Reject transitions the approval to rejected
func (a *ApprovalFSM) Reject(ctx context.Context) error {
	if !a.approval.MayReject() {
		return fmt.Errorf("approval cannot be rejected in current state: %s", a.approval.Status)
	}

	if err := a.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("failed to reject change: %w", err)
	}

	a.approval.Status = a.fsm.Current()
	return nil
}

// Reopen returns a reviewed approval to pending
func (a *ApprovalFSM) Reopen(ctx context.Context) error {
	if !a.approval.MayReopen() {
		return fmt.Errorf("approval cannot be reopened in current state: %s", a.approval.Status)
	}

	if err := a.fsm.Event(ctx, "reopen"); err != nil {
		return fmt.Errorf("failed to reopen approval: %w", err)
	}

	a.approval.Status = a.fsm.Current()
	return nil
}

// Current returns the current state
func (a *ApprovalFSM) Current() string {
	return a.fsm.Current()
}

// Can checks if a transition is possible
func (a *ApprovalFSM) Can(event string) bool {
	return a.fsm.Can(event)
}
