package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/services"
)

type TimesheetHandler struct {
	timesheetService *services.TimesheetService
	approvalService  *services.ApprovalService
}

func NewTimesheetHandler(timesheetService *services.TimesheetService, approvalService *services.ApprovalService) *TimesheetHandler {
	return &TimesheetHandler{
		timesheetService: timesheetService,
		approvalService:  approvalService,
	}
}

type timesheetInput struct {
	EmployeeID   uint   `json:"employee_id" binding:"required"`
	WeekStarting string `json:"week_starting" binding:"required"`
}

// @Summary Get or Create Timesheet
// @Description Returns the employee's timesheet for the week, creating it if absent. Idempotent.
// @Tags Timesheets
// @Accept json
// @Produce json
// @Success 200 {object} models.TimesheetResponse
// @Router /timesheets [post]
func (h *TimesheetHandler) GetOrCreate(c *gin.Context) {
	var input timesheetInput
	if err := BindNestedOrFlat(c, "timesheet", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekStarting, err := time.Parse(models.DateLayout, input.WeekStarting)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_starting. Use YYYY-MM-DD"})
		return
	}

	timesheet, err := h.timesheetService.GetOrCreateTimesheet(c.Request.Context(), input.EmployeeID, weekStarting)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timesheet": timesheet.ToResponse()})
}

func (h *TimesheetHandler) Show(c *gin.Context) {
	id, err := uintParam(c, "timesheet_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	timesheet, err := h.timesheetService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timesheet": timesheet.ToResponse()})
}

// ByEmployee lists an employee's timesheets, most recent week first
func (h *TimesheetHandler) ByEmployee(c *gin.Context) {
	employeeID, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	timesheets, err := h.timesheetService.FindForEmployee(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.TimesheetResponse, 0, len(timesheets))
	for i := range timesheets {
		responses = append(responses, timesheets[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"timesheets": responses})
}

// ByWeek lists every employee's timesheet for one week
func (h *TimesheetHandler) ByWeek(c *gin.Context) {
	week, err := dateQuery(c, "week_starting")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if week.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_starting is required"})
		return
	}

	timesheets, err := h.timesheetService.FindForWeek(c.Request.Context(), week)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.TimesheetResponse, 0, len(timesheets))
	for i := range timesheets {
		responses = append(responses, timesheets[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"timesheets": responses})
}

type timesheetUpdateInput struct {
	WeekStarting string `json:"week_starting" binding:"required"`
}

// Update moves a timesheet to a different week; week_ending follows
func (h *TimesheetHandler) Update(c *gin.Context) {
	id, err := uintParam(c, "timesheet_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input timesheetUpdateInput
	if err := BindNestedOrFlat(c, "timesheet", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekStarting, err := time.Parse(models.DateLayout, input.WeekStarting)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_starting. Use YYYY-MM-DD"})
		return
	}

	timesheet, err := h.timesheetService.UpdateWeek(c.Request.Context(), id, weekStarting, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timesheet": timesheet.ToResponse()})
}

// Delete removes a timesheet with its logs and change histories
func (h *TimesheetHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "timesheet_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.timesheetService.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Timesheet deleted"})
}

// @Summary Upsert Daily Log
// @Description Create or update a daily log; edits to description or project append a change record
// @Tags DailyLogs
// @Accept json
// @Produce json
// @Success 200 {object} models.DailyLogResponse
// @Router /daily_logs [post]
func (h *TimesheetHandler) UpsertLog(c *gin.Context) {
	var input services.DailyLogInput
	if err := BindNestedOrFlat(c, "daily_log", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.timesheetService.UpsertDailyLog(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_log": log.ToResponse()})
}

type bulkSaveInput struct {
	DailyLogs []services.DailyLogInput `json:"daily_logs" binding:"required"`
}

// @Summary Bulk Save Daily Logs
// @Description Upserts every entry in one all-or-nothing transaction
// @Tags DailyLogs
// @Accept json
// @Produce json
// @Router /daily_logs/bulk [post]
func (h *TimesheetHandler) BulkSave(c *gin.Context) {
	var input bulkSaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.timesheetService.BulkSave(c.Request.Context(), input.DailyLogs)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.DailyLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, logs[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"daily_logs": responses})
}

func (h *TimesheetHandler) ShowLog(c *gin.Context) {
	id, err := uintParam(c, "log_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log, err := h.timesheetService.FindDailyLog(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_log": log.ToResponse()})
}

// DeleteLog removes a daily log and its change history
func (h *TimesheetHandler) DeleteLog(c *gin.Context) {
	id, err := uintParam(c, "log_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.timesheetService.DeleteDailyLog(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Daily log deleted"})
}

// LogChanges lists a daily log's change history, newest first
func (h *TimesheetHandler) LogChanges(c *gin.Context) {
	id, err := uintParam(c, "log_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	changes, err := h.approvalService.ListChangesForLog(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.DailyLogChangeResponse, 0, len(changes))
	for i := range changes {
		responses = append(responses, changes[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"changes": responses})
}
