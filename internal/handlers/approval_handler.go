package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/services"
)

type ApprovalHandler struct {
	approvalService *services.ApprovalService
}

func NewApprovalHandler(approvalService *services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

type approvalInput struct {
	ManagerID *uint  `json:"manager_id"`
	Status    string `json:"status" binding:"required"`
	Comments  string `json:"comments"`
}

// @Summary File Approval
// @Description Record a manager's disposition of one change record
// @Tags Approvals
// @Accept json
// @Produce json
// @Param change_id path int true "Change ID"
// @Success 201 {object} models.ProjectApprovalResponse
// @Router /changes/{change_id}/approvals [post]
func (h *ApprovalHandler) Create(c *gin.Context) {
	changeID, err := uintParam(c, "change_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input approvalInput
	if err := BindNestedOrFlat(c, "approval", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approval, err := h.approvalService.FileApproval(c.Request.Context(), changeID, input.ManagerID, input.Status, input.Comments)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"approval": approval.ToResponse()})
}

// Index lists the approvals filed against a change record, newest first
func (h *ApprovalHandler) Index(c *gin.Context) {
	changeID, err := uintParam(c, "change_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	approvals, err := h.approvalService.ListApprovals(c.Request.Context(), changeID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectApprovalResponse, 0, len(approvals))
	for i := range approvals {
		responses = append(responses, approvals[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"approvals": responses})
}

func (h *ApprovalHandler) Show(c *gin.Context) {
	id, err := uintParam(c, "approval_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	approval, err := h.approvalService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approval": approval.ToResponse()})
}

type reviewInput struct {
	Status   string `json:"status" binding:"required"`
	Comments string `json:"comments"`
}

// Review approves or rejects a pending approval
func (h *ApprovalHandler) Review(c *gin.Context) {
	id, err := uintParam(c, "approval_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input reviewInput
	if err := BindNestedOrFlat(c, "approval", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approval, err := h.approvalService.Review(c.Request.Context(), id, input.Status, input.Comments)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approval": approval.ToResponse()})
}

// Reopen returns a reviewed approval to pending
func (h *ApprovalHandler) Reopen(c *gin.Context) {
	id, err := uintParam(c, "approval_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	approval, err := h.approvalService.Reopen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approval": approval.ToResponse()})
}
